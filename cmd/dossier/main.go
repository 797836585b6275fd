// Copyright 2026 Tessier Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tessierlabs/dossier"
	"github.com/tessierlabs/dossier/ai"
	"github.com/tessierlabs/dossier/core"
)

func main() {
	commonFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB snapshot directory",
			Value:   "./dossier_db",
		},
		&cli.StringFlag{
			Name:  "data-dir",
			Usage: "Root directory of owner document trees",
			Value: "./dossier_data",
		},
		&cli.Int64Flag{
			Name:     "client",
			Usage:    "Client (tenant) identifier",
			Required: true,
		},
		&cli.Int64Flag{
			Name:     "user",
			Usage:    "User identifier within the client",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "embed",
			Usage: "Enable embedding-based vector scoring",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
	}

	app := &cli.App{
		Name:  "dossier",
		Usage: "Per-owner document retrieval and question answering",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "query",
				Usage:     "Answer a question from the owner's documents",
				ArgsUsage: "<question>",
				Action:    queryCommand,
				Flags:     commonFlags,
			},
			{
				Name:   "refresh",
				Usage:  "Rebuild and persist the owner's document index",
				Action: refreshCommand,
				Flags:  commonFlags,
			},
			{
				Name:   "status",
				Usage:  "Report the owner's index readiness",
				Action: statusCommand,
				Flags:  commonFlags,
			},
			{
				Name:   "seed",
				Usage:  "Create the owner's sample starter documents",
				Action: seedCommand,
				Flags:  commonFlags,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openSystem(c *cli.Context) (*dossier.System, core.Owner, error) {
	owner := core.Owner{ClientID: c.Int64("client"), UserID: c.Int64("user")}
	if err := core.ValidateOwner(owner); err != nil {
		return nil, core.Owner{}, err
	}

	var opts []dossier.SystemOption
	if c.Bool("embed") {
		opts = append(opts, dossier.WithAIConfig(ai.NewConfig(
			ai.WithEmbeddingHost(c.String("embedding-host")),
			ai.WithEmbeddingModel(c.String("embedding-model")),
		)))
	}

	sys, err := dossier.NewSystem(c.String("db"), c.String("data-dir"), opts...)
	if err != nil {
		return nil, core.Owner{}, fmt.Errorf("failed to open system: %w", err)
	}
	return sys, owner, nil
}

func queryCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	sys, owner, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	result, err := sys.Engine().Query(context.Background(), owner, question)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Println(result.Answer)
	if result.HasResults {
		fmt.Println()
		fmt.Println("Sources :")
		for _, source := range result.Sources {
			fmt.Printf("  - %s\n", source)
		}
		fmt.Printf("\nPertinence : %.2f (%s)\n", result.Relevance, result.Quality)
	}
	if len(result.Suggestions) > 0 {
		fmt.Println()
		fmt.Println("Documents disponibles :")
		for _, title := range result.Suggestions {
			fmt.Printf("  - %s\n", title)
		}
	}
	return nil
}

func refreshCommand(c *cli.Context) error {
	sys, owner, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	result, err := sys.Engine().Refresh(context.Background(), owner)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	fmt.Printf("Fichiers vus : %d\n", result.TotalFiles)
	fmt.Printf("Fichiers indexés : %d\n", result.IndexedFiles)
	fmt.Printf("Documents : %d\n", result.Documents)
	return nil
}

func statusCommand(c *cli.Context) error {
	sys, owner, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	status, err := sys.Engine().Status(context.Background(), owner)
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	if status.Ready {
		fmt.Println("Index prêt")
	} else {
		fmt.Println("Index vide")
	}
	fmt.Printf("Fichiers vus : %d\n", status.TotalFiles)
	fmt.Printf("Fichiers indexés : %d\n", status.IndexedFiles)
	for _, title := range status.Titles {
		fmt.Printf("  - %s\n", title)
	}
	return nil
}

func seedCommand(c *cli.Context) error {
	sys, owner, err := openSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	ctx := context.Background()
	for _, sample := range sampleFiles {
		entry, err := sys.Files().SaveDocument(ctx, owner, sample.filename, sample.title, sample.tags, sample.content)
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", sample.filename, err)
		}
		fmt.Printf("Créé : %s (%s)\n", entry.Title, entry.Filename)
	}
	fmt.Println("Les fichiers d'exemple ne sont jamais indexés ni retournés par les requêtes.")
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
