package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"centavo/internal/domain/transaction"
	"centavo/internal/infrastructure/postgres"
	"centavo/internal/shared/config"
)

const usage = `Centavo Admin CLI - Management commands for the Centavo API

Usage:
  admin <command> [options]

Commands:
  balance-audit   Recompute account balances from transactions and report drift

Examples:
  # Audit all accounts of a specific user
  admin balance-audit --user-id=1

  # Audit multiple users
  admin balance-audit --user-id=1,2,3

  # Audit every registered user
  admin balance-audit --all

  # Audit and overwrite drifted balances with the recomputed value
  admin balance-audit --all --repair

  # Run with timeout
  admin balance-audit --user-id=1 --timeout=5m
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "balance-audit":
		runBalanceAudit(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func runBalanceAudit(args []string) {
	fs := flag.NewFlagSet("balance-audit", flag.ExitOnError)

	userIDStr := fs.String("user-id", "", "User ID(s) to audit (comma-separated for multiple)")
	allUsers := fs.Bool("all", false, "Audit all registered users")
	repair := fs.Bool("repair", false, "Overwrite drifted balances with the recomputed value")
	timeoutStr := fs.String("timeout", "30m", "Timeout for the operation (e.g., 5m, 1h)")

	fs.Usage = func() {
		fmt.Println("Usage: admin balance-audit [options]")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Println("  admin balance-audit --user-id=1")
		fmt.Println("  admin balance-audit --user-id=1,2,3")
		fmt.Println("  admin balance-audit --all")
		fmt.Println("  admin balance-audit --all --repair --timeout=1h")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *userIDStr == "" && !*allUsers {
		fmt.Println("Error: must specify --user-id or --all")
		fs.Usage()
		os.Exit(1)
	}

	// Parse timeout
	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	// Initialize repositories and service
	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	svc := transaction.NewService(transactionRepo, accountRepo, db)

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var userIDs []int64

	if *allUsers {
		userIDs, err = userRepo.ListIDs(ctx)
		if err != nil {
			log.Fatalf("Failed to list users: %v", err)
		}
		log.Printf("Found %d registered users", len(userIDs))
	} else {
		// Parse user IDs from comma-separated string
		parts := strings.Split(*userIDStr, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			id, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				log.Fatalf("Invalid user ID '%s': %v", p, err)
			}
			userIDs = append(userIDs, id)
		}
	}

	if len(userIDs) == 0 {
		log.Println("No users to process")
		return
	}

	log.Printf("Starting balance audit for %d user(s), repair=%t", len(userIDs), *repair)
	startTime := time.Now()

	drifted := 0
	for _, uid := range userIDs {
		results, err := svc.AuditUser(ctx, uid, *repair)
		if err != nil {
			log.Fatalf("Balance audit failed for user %d: %v", uid, err)
		}
		drifted += printAuditResults(uid, results)
	}

	elapsed := time.Since(startTime)
	log.Printf("Balance audit completed in %v, %d drifted account(s)", elapsed, drifted)

	if drifted > 0 && !*repair {
		os.Exit(2)
	}
}

func printAuditResults(userID int64, results []*transaction.AuditResult) int {
	fmt.Printf("\n=== User %d ===\n", userID)
	fmt.Printf("  Accounts audited: %d\n", len(results))

	drifted := 0
	for _, r := range results {
		if r.Consistent() {
			continue
		}
		drifted++
		status := "DRIFTED"
		if r.Repaired {
			status = "REPAIRED"
		}
		fmt.Printf("  - account %d: stored=%.2f expected=%.2f drift=%.6f [%s]\n",
			r.AccountID, r.Stored, r.Expected, r.Drift, status)
	}

	if drifted == 0 {
		fmt.Println("  All balances consistent")
	}
	return drifted
}
