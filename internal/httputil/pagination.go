package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseTakeSkip safely parses and validates take and skip query parameters.
// These mirror the CRM API's paging vocabulary. Defaults: take=50, skip=0.
// The take value cannot exceed 100.
func ParseTakeSkip(c *gin.Context) (take, skip int, err error) {
	// Parse take query parameter (default: 50, max: 100)
	takeStr := c.DefaultQuery("take", "50")
	take, err = strconv.Atoi(takeStr)
	if err != nil || take < 1 || take > 100 {
		return 0, 0, fmt.Errorf("invalid take parameter: must be between 1 and 100")
	}

	// Parse skip query parameter (default: 0)
	skipStr := c.DefaultQuery("skip", "0")
	skip, err = strconv.Atoi(skipStr)
	if err != nil || skip < 0 {
		return 0, 0, fmt.Errorf("invalid skip parameter: must be a non-negative integer")
	}

	return take, skip, nil
}
