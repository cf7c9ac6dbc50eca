package main

import (
	"context"

	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/cmd/bolivar-cli/commands"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "bolivar-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
