package main

import (
	"video-hosting-service/app"
	"video-hosting-service/pkg/observability"
)

func main() {
	observability.StartProfiling("video-hosting-service")
	app.Run()
}
