package fleet

import (
	"log"
	"time"
)

const component = "fleet"

// LogRequest logs an outbound feed request.
func LogRequest(method, url string) {
	log.Printf("[%s] %s %s", component, method, url)
}

// LogResponse logs a feed response.
func LogResponse(url string, statusCode int, duration time.Duration, resultCount int) {
	log.Printf("[%s] %s status=%d duration=%dms results=%d",
		component, url, statusCode, duration.Milliseconds(), resultCount)
}

// LogError logs an error from a feed operation.
func LogError(operation string, err error) {
	log.Printf("[%s] %s error: %v", component, operation, err)
}

// LogTransform logs the raw -> normalized reduction of a poll.
func LogTransform(inputCount, outputCount int, duration time.Duration) {
	log.Printf("[%s] normalized %d -> %d aircraft in %dms",
		component, inputCount, outputCount, duration.Milliseconds())
}
