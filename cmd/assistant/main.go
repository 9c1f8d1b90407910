package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"campus-assistant-be/internal/bootstrap"
	"campus-assistant-be/internal/config"
	"campus-assistant-be/internal/constant"
	"campus-assistant-be/internal/dto"
	"campus-assistant-be/internal/tracer"
	"campus-assistant-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Alert Service...")
		if err := container.AlertService.Consume(context.Background()); err != nil {
			log.Printf("Background Alert Consumer Error: %v", err)
		}
	}()

	runConsole(container, cfg)
}

func runConsole(container *bootstrap.Container, cfg *config.Config) {
	ctx := context.Background()

	color.Cyan("🐯 Ociel - Asistente Virtual %s", cfg.Institution.ShortName)
	color.Cyan("Commands: 'health', 'user <student|employee|public>', 'quit'\n")

	userType := constant.UserTypeStudent
	sessionID := ""

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s]> ", userType)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "quit" || line == "exit":
			return
		case line == "health":
			printHealth(container.ChatService.Health(ctx))
			continue
		case strings.HasPrefix(line, "user "):
			userType = strings.TrimSpace(strings.TrimPrefix(line, "user "))
			sessionID = "" // a new persona starts a new conversation
			color.Yellow("Switched to user type: %s", userType)
			continue
		}

		res, err := container.ChatService.Process(ctx, &dto.ProcessRequest{
			Message:   line,
			UserType:  userType,
			SessionId: sessionID,
			ClientIP:  "console",
		})
		if err != nil {
			color.Red("Error: %v", err)
			continue
		}
		sessionID = res.SessionId
		printResponse(res)
	}
}

func printResponse(res *dto.ProcessResponse) {
	if res.RateLimited {
		color.Red("\n%s (retry in %ds)\n", res.Response, res.RetryAfterSeconds)
		return
	}

	color.Green("\n%s\n", res.Response)
	fmt.Printf("strategy=%s confidence=%.2f quality=%.2f took=%dms\n",
		res.Strategy, res.Confidence, res.Quality.Overall, res.ResponseTimeMs)

	if res.Escalation.Escalate {
		color.Yellow("⚠ Escalated [%s] to %s (%s): %s",
			res.Escalation.Priority,
			res.Escalation.RecommendedDepartment,
			res.Escalation.EstimatedResolution,
			strings.Join(res.Escalation.Reasons, ", "))
	}

	if res.Contact.Department != "" {
		fmt.Printf("Contacto: %s", res.Contact.Department)
		if res.Contact.Phone != "" {
			fmt.Printf(" tel %s", res.Contact.Phone)
		}
		if res.Contact.Extension != "" {
			fmt.Printf(" ext %s", res.Contact.Extension)
		}
		fmt.Println()
	}

	if len(res.SuggestedActions) > 0 {
		fmt.Println("Sugerencias:")
		for _, action := range res.SuggestedActions {
			fmt.Printf("  - %s\n", action.Text)
		}
	}
}

func printHealth(health *dto.HealthResponse) {
	b, err := json.MarshalIndent(health, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", health)
		return
	}
	fmt.Println(string(b))
}
