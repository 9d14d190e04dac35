/*
Copyright 2025 Dima Krasner

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// fetch prints the body of a single Gemini page: a minimal, non-interactive
// consumer of the protocol client.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dimkr/dioscuri/cfg"
	"github.com/dimkr/dioscuri/gemini"
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s URL\n", os.Args[0])
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var config cfg.Config
	config.FillDefaults()

	client, err := gemini.NewClient(&config)
	if err != nil {
		slog.Error("Failed to create the client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	body, err := client.Request(ctx, flag.Arg(0))
	if err != nil {
		slog.Error("Request failed", "url", flag.Arg(0), "error", err)
		os.Exit(1)
	}

	os.Stdout.WriteString(body)
}
