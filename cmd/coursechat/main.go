package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/coursechat/coursechat/internal/controller"
	"github.com/coursechat/coursechat/internal/provider"
	"github.com/coursechat/coursechat/internal/store"
	"github.com/coursechat/coursechat/memory"
	"github.com/coursechat/coursechat/tools"
)

func main() {
	// Basic env check (SDK also reads API key)
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		fmt.Println("Missing ANTHROPIC_API_KEY; export it before running.")
		os.Exit(1)
	}

	dataDir := os.Getenv("CCHAT_DATA_DIR")
	if dataDir == "" {
		dataDir = "docs"
	}
	catalog, err := store.Load(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load course catalog: %v\n", err)
		os.Exit(1)
	}

	registry := tools.NewRegistry()
	for _, def := range []tools.ToolDefinition{
		tools.NewSearchContentTool(catalog),
		tools.NewCourseOutlineTool(catalog),
	} {
		if err := registry.Register(def); err != nil {
			// Registry misconfiguration is fatal at startup.
			fmt.Fprintf(os.Stderr, "tool registration: %v\n", err)
			os.Exit(1)
		}
	}

	model := provider.DefaultModel
	if v := os.Getenv("CCHAT_MODEL"); v != "" {
		model = anthropic.Model(v)
	}

	ctl := controller.New(provider.NewClient(model), registry, controller.Options{
		MaxRounds: envInt("CCHAT_MAX_ROUNDS"),
		MaxTokens: int64(envInt("CCHAT_MAX_TOKENS")),
	})

	historyPath := "history.json"
	history, err := memory.LoadHistory(historyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load history: %v\n", err)
		history = &memory.History{}
	}

	// Graceful shutdown on Ctrl-C (SIGINT) / SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		fmt.Println("\nExiting...")
		cancel()
	}()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Printf("Ask about the course materials (%d courses loaded, tools: %s; Ctrl-C to quit)\n",
		len(catalog.Courses()), strings.Join(registry.Names(), ", "))

	// stdin reader goroutine -> lines into channel
	inputCh := make(chan string)
	go func() {
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

outer:
	for {
		fmt.Print("\u001b[94mYou\u001b[0m: ")
		var (
			query string
			ok    bool
		)
		select {
		case <-ctx.Done():
			break outer
		case query, ok = <-inputCh:
			if !ok {
				break outer
			}
		}
		if strings.TrimSpace(query) == "" {
			continue
		}

		answer, err := runQuery(ctx, ctl, query, history.Summary())
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		fmt.Printf("\u001b[93mAssistant\u001b[0m: %s\n", answer.Text)
		if len(answer.Sources) > 0 {
			fmt.Println("Sources:")
			for _, s := range answer.Sources {
				if s.Link != "" {
					fmt.Printf("  - %s (%s)\n", s.Text, s.Link)
				} else {
					fmt.Printf("  - %s\n", s.Text)
				}
			}
		}

		history.Add(query, answer.Text)
		if err := history.Save(historyPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save history: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stdin read error: %v\n", err)
	}
}

// runQuery applies the optional per-query deadline from CCHAT_QUERY_TIMEOUT
// (seconds) around one controller run.
func runQuery(ctx context.Context, ctl *controller.Controller, query, historySummary string) (controller.Answer, error) {
	if secs := envInt("CCHAT_QUERY_TIMEOUT"); secs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(secs)*time.Second)
		defer cancel()
	}
	return ctl.Run(ctx, query, historySummary)
}

// envInt reads an integer env var; unset, empty, or malformed yields 0 so the
// controller defaults apply.
func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid %s %q, using default\n", key, v)
		return 0
	}
	return n
}
