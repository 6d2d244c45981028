package observability

import (
	"os"

	pyroscope "github.com/grafana/pyroscope-go"

	"video-hosting-service/pkg/logger"
)

// StartProfiling attaches continuous profiling when PYROSCOPE_SERVER_ADDRESS is set.
// A missing address disables profiling silently so local runs need no agent.
func StartProfiling(appName string) {
	addr := os.Getenv("PYROSCOPE_SERVER_ADDRESS")
	if addr == "" {
		return
	}
	_, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   addr,
		Logger:          nil,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
		},
	})
	if err != nil {
		logger.Warnf("pyroscope start failed error=%v", err)
	}
}
