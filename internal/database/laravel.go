package database

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"tsplit/internal/config"
	"tsplit/internal/domain"
)

// LaravelPreparer implements Preparer for Laravel projects
type LaravelPreparer struct {
	config  *config.Config
	manager *Manager
}

// NewLaravelPreparer creates a new LaravelPreparer
func NewLaravelPreparer(cfg *config.Config, manager *Manager) *LaravelPreparer {
	return &LaravelPreparer{
		config:  cfg,
		manager: manager,
	}
}

// Prepare provisions one database per worker and runs Laravel migrations in
// parallel. With keepData the existing schema is migrated in place instead of
// being rebuilt from scratch.
func (lp *LaravelPreparer) Prepare(workerCount int, keepData bool) error {
	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║                  Preparing Test Databases                  ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	workers, created, err := lp.manager.EnsureDatabases(workerCount)
	if err != nil {
		return fmt.Errorf("failed to check databases: %w", err)
	}

	if len(workers) == 0 {
		return fmt.Errorf("no test databases available")
	}

	if created > 0 {
		color.White("Created %d missing database(s)\n", created)
	}

	migrationFiles, err := lp.findMigrationFiles()
	if err != nil {
		return fmt.Errorf("failed to find migration files: %w", err)
	}

	migrationCount := len(migrationFiles)
	totalProgress := len(workers) * migrationCount

	color.White("Workers: %d | Migration files: %d | Total progress: %d\n\n", len(workers), migrationCount, totalProgress)

	var progressMu sync.Mutex
	completedCount := 0
	bar := newPrepareBar(totalProgress)

	var wg sync.WaitGroup
	results := make(chan domain.PrepareResult, len(workers))
	startTime := time.Now()

	for _, workerID := range workers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			results <- lp.prepareWorker(id, bar, &completedCount, &progressMu, keepData)
		}(workerID)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var failed []domain.PrepareResult
	for result := range results {
		if !result.Success {
			failed = append(failed, result)
		}
	}

	bar.Finish()

	duration := time.Since(startTime)

	fmt.Print("\n")
	if len(failed) > 0 {
		color.Red("✗ Preparation failed for %d worker(s)\n", len(failed))
		for _, result := range failed {
			color.Red("  Worker %d (DB: %s): %v\n", result.WorkerID, lp.config.GetDatabaseName(result.WorkerID), result.Error)
		}
		return fmt.Errorf("preparation failed for %d worker(s)", len(failed))
	}

	color.Green("✓ Databases prepared successfully for all %d workers\n", len(workers))
	color.White("Duration: %s\n", duration.Round(time.Millisecond))

	return nil
}

// findMigrationFiles discovers all migration files in database/migrations
func (lp *LaravelPreparer) findMigrationFiles() ([]string, error) {
	migrationsPath := filepath.Join(lp.config.ProjectPath, "database", "migrations")
	var migrationFiles []string

	err := filepath.WalkDir(migrationsPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		// Laravel migration files end with .php
		if strings.HasSuffix(d.Name(), ".php") {
			migrationFiles = append(migrationFiles, path)
		}

		return nil
	})

	return migrationFiles, err
}

func newPrepareBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(
			color.CyanString("Migrating: ")+
				color.GreenString("[completed: 0/%d]", total),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// prepareWorker runs artisan migrate for one worker with streaming output
// feeding the shared progress bar.
func (lp *LaravelPreparer) prepareWorker(workerID int, bar *progressbar.ProgressBar, completedCount *int, progressMu *sync.Mutex, keepData bool) domain.PrepareResult {
	fail := func(err error) domain.PrepareResult {
		return domain.PrepareResult{WorkerID: workerID, Success: false, Error: err}
	}

	projectAbsPath, err := filepath.Abs(lp.config.ProjectPath)
	if err != nil {
		return fail(fmt.Errorf("failed to get absolute project path: %w", err))
	}

	artisanPath := filepath.Join(projectAbsPath, "artisan")
	ctx := context.Background()

	migrateCmd := "migrate:fresh"
	if keepData {
		migrateCmd = "migrate"
	}

	cmd := exec.CommandContext(ctx, "php", artisanPath, migrateCmd, "--env=testing", "--force")
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, fmt.Sprintf("DB_DATABASE=%s", lp.config.GetDatabaseName(workerID)))
	cmd.Dir = projectAbsPath

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fail(fmt.Errorf("failed to create stdout pipe: %w", err))
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fail(fmt.Errorf("failed to create stderr pipe: %w", err))
	}

	if err := cmd.Start(); err != nil {
		return fail(fmt.Errorf("failed to start command: %w", err))
	}

	var outputBuilder strings.Builder
	var outputMu sync.Mutex
	var scanWg sync.WaitGroup

	// Count each migrated table as one progress step
	processLine := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}

		// Skip Laravel chatter that is not migration progress
		skipPatterns := []string{"Dropping all tables", "Dropped all tables", "Nothing to migrate", "Migration table created"}
		for _, skip := range skipPatterns {
			if strings.Contains(line, skip) {
				return
			}
		}

		progressMu.Lock()
		*completedCount++
		currentCount := *completedCount
		maxCount := bar.GetMax()
		progressMu.Unlock()

		bar.Set(currentCount)
		bar.Describe(color.CyanString("Migrating: ") +
			color.GreenString("[completed: %d/%d]", currentCount, maxCount))
	}

	stream := func(reader io.Reader) {
		defer scanWg.Done()
		scanner := bufio.NewScanner(reader)
		for scanner.Scan() {
			line := scanner.Text()
			outputMu.Lock()
			outputBuilder.WriteString(line)
			outputBuilder.WriteString("\n")
			outputMu.Unlock()
			processLine(line)
		}
	}

	scanWg.Add(2)
	go stream(stdout)
	go stream(stderr)

	err = cmd.Wait()
	scanWg.Wait()

	return domain.PrepareResult{
		WorkerID: workerID,
		Success:  err == nil,
		Output:   outputBuilder.String(),
		Error:    err,
	}
}
