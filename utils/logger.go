package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
)

func ColorText(text, color string) string {
	return color + text + Reset
}

func ColorStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return ColorText(fmt.Sprintf("%d", statusCode), Green)
	case statusCode >= 400 && statusCode < 500:
		return ColorText(fmt.Sprintf("%d", statusCode), Yellow)
	case statusCode >= 500:
		return ColorText(fmt.Sprintf("%d", statusCode), Red)
	default:
		return fmt.Sprintf("%d", statusCode)
	}
}

// GetAPIHitter returns a printable identity for the authenticated caller.
func GetAPIHitter(c *gin.Context) string {
	if uuid, exists := c.Get("userUUID"); exists {
		if s, ok := uuid.(string); ok && s != "" {
			return s
		}
	}
	return "Unknown"
}

func PrintLogInfo(username *string, statusCode int, functionName string, err *error) {
	user := "Unknown"
	if username != nil {
		user = *username
	}

	event := log.Info()
	if statusCode >= 500 {
		event = log.Error()
	} else if statusCode >= 400 {
		event = log.Warn()
	}
	if err != nil && *err != nil {
		event = event.Err(*err)
	}

	event.Msg(fmt.Sprintf("User: %s | Status: %s | Function: %s", user, ColorStatus(statusCode), functionName))
}
