// Package httpserver exposes the resume-builder HTTP API.
package httpserver

import (
	"github.com/gin-gonic/gin"

	"github.com/resumebuilder/server/internal/token"
)

const claimsKey = "rb.claims"

// setClaims stores the verified identity claims on the request context.
func setClaims(c *gin.Context, claims token.Claims) {
	c.Set(claimsKey, claims)
}

// claimsFrom fetches the verified identity claims from the request context.
func claimsFrom(c *gin.Context) (token.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return token.Claims{}, false
	}
	claims, ok := v.(token.Claims)
	return claims, ok
}
