package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/quaderno-ai/quaderno-backend/internal/config"
	"github.com/quaderno-ai/quaderno-backend/internal/llm"
	"github.com/quaderno-ai/quaderno-backend/internal/modules/mathcoach"
	"github.com/quaderno-ai/quaderno-backend/internal/modules/teacher"
	"github.com/quaderno-ai/quaderno-backend/internal/platform/logger"
	"github.com/quaderno-ai/quaderno-backend/internal/search"
)

func main() {
	mode := flag.String("mode", "teacher", "chat mode: teacher or math")
	contextFile := flag.String("context", "", "path to a pre-rendered data context file (teacher mode)")
	timeout := flag.Duration("timeout", 2*time.Minute, "per-request timeout")
	flag.Parse()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Config load failed", "error", err)
	}

	// LLM service
	llmService, err := llm.NewService(log)
	if err != nil {
		log.Fatal("LLM service init failed", "error", err)
	}

	dataContext := ""
	if *contextFile != "" {
		b, err := os.ReadFile(*contextFile)
		if err != nil {
			log.Fatal("Context file read failed", "error", err)
		}
		dataContext = string(b)
	}

	teacherAgent := &teacher.Agent{
		Log:    log,
		LLM:    llmService,
		Search: search.NewDuckDuckGo(log),
		Router: &teacher.Router{
			Log:      log,
			LLM:      llmService,
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.RouterModel,
		},
		MaxIterations:    cfg.Agent.MaxIterations,
		SearchMaxResults: cfg.Search.MaxResults,
	}
	mathAgent := &mathcoach.Agent{
		Log:           log,
		LLM:           llmService,
		MaxIterations: cfg.Agent.MathMaxIterations,
	}

	log.Info("Chat ready", "mode", *mode, "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	fmt.Println("Scrivi un messaggio (CTRL+D per uscire):")

	var messages []llm.Message
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		messages = append(messages, llm.Message{Role: llm.RoleUser, Content: line})

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		var reply string
		switch *mode {
		case "math":
			reply, err = mathAgent.Run(ctx, messages, cfg.LLM.Provider, cfg.LLM.Model)
			if err != nil {
				log.Error("Math agent failed", "error", err)
				reply = "Mi dispiace, si è verificato un errore. Riprova più tardi."
			}
		default:
			reply = teacherAgent.Run(ctx, teacher.Input{
				Messages: messages,
				Context:  dataContext,
				Provider: cfg.LLM.Provider,
				Model:    cfg.LLM.Model,
			})
		}
		cancel()

		fmt.Println(reply)
		messages = append(messages, llm.Message{Role: llm.RoleAssistant, Content: reply})
	}
}
