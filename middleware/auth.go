package middleware

import (
	"net/http"
	"strings"

	"solarpms/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 인증 미들웨어
// 토큰의 사용자/회사 ID를 컨텍스트에 싣는다. 모든 조회는 회사 범위로 제한된다.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "인증 정보가 없습니다"})
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "유효하지 않은 인증 정보"})
			return
		}

		c.Set("uid", claims.UserID)
		c.Set("companyId", claims.CompanyID)
		c.Next()
	}
}
