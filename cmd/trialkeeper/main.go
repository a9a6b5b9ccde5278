package main

import (
	"github.com/tunekit/trialkeeper/internal/cli"
	"github.com/tunekit/trialkeeper/internal/metrics"
)

func main() {
	metrics.EmitBuildInfo()
	cli.Execute()
}
