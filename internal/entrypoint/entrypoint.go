package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sbreader/internal/audit"
	"github.com/mrlokans/sbreader/internal/config"
	"github.com/mrlokans/sbreader/internal/entities"
	http_controllers "github.com/mrlokans/sbreader/internal/http"
	"github.com/mrlokans/sbreader/internal/importers"
	"github.com/mrlokans/sbreader/internal/interstitial"
	"github.com/mrlokans/sbreader/internal/scheduler"
	"github.com/mrlokans/sbreader/internal/services"
	"github.com/mrlokans/sbreader/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 sends SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// LoadTitles reads the static chapter title table. A missing path yields an
// empty table; an unreadable file is logged and also yields an empty table.
func LoadTitles(path string) entities.TitleTable {
	if path == "" {
		return entities.TitleTable{}
	}
	titles, err := importers.LoadTitlesFile(path)
	if err != nil {
		log.Printf("WARNING: Failed to load chapter titles from %s: %v", path, err)
		return entities.TitleTable{}
	}
	log.Printf("Loaded chapter titles for %d cantos from %s", len(titles), path)
	return titles
}

// ImportOnStartup runs the importer against path. The import is idempotent,
// so running it on every start only fills in rows that are missing. When
// auditor is set a report of the run is saved, including interrupted runs.
func ImportOnStartup(ctx context.Context, importer *importers.CorpusImporter, path string, auditor *audit.Auditor) error {
	doc, err := importers.LoadDocumentFile(path)
	if err != nil {
		return err
	}

	report := &audit.ImportReport{
		Source:    path,
		StartedAt: time.Now(),
		Document:  importers.Summarize(doc),
	}
	log.Printf("[IMPORT] Importing %s: %d cantos, %d chapters, %d verses",
		path, report.Document.Cantos, report.Document.Chapters, report.Document.Verses)

	report.Result, err = importer.Import(ctx, doc)
	report.FinishedAt = time.Now()
	if err != nil {
		report.Error = err.Error()
	}

	if auditor != nil {
		if _, saveErr := auditor.SaveImportReport(report); saveErr != nil {
			log.Printf("WARNING: Failed to save import report: %v", saveErr)
		}
	}
	if err != nil {
		return err
	}

	log.Printf("[IMPORT] Done: %d rows created, %d failed", report.Result.Created(), report.Result.Failed)
	return nil
}

func newAuditor(dir string) *audit.Auditor {
	if dir == "" {
		return nil
	}
	return audit.NewAuditor(dir)
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting sbreader v%s", version)

	stores, err := OpenStores(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer stores.Close()

	importer := importers.NewCorpusImporter(stores.Corpus)
	if cfg.Corpus.ImportPath != "" {
		if err := ImportOnStartup(context.Background(), importer, cfg.Corpus.ImportPath, newAuditor(cfg.Corpus.ReportDir)); err != nil {
			log.Printf("WARNING: Corpus import from %s failed: %v", cfg.Corpus.ImportPath, err)
		}
	}

	titles := LoadTitles(cfg.Corpus.TitlesPath)
	search := services.NewSearch(stores.Corpus)

	healthChecks := []http_controllers.Pinger{stores.CorpusDB, stores.BookmarksDB}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var verifyScheduler *scheduler.VerifyScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.CorpusPath, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewImportCorpusQueue(importer),
			tasks.NewVerifyCorpusQueue(stores.Corpus, stores.Settings),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
		healthChecks = append(healthChecks, taskClient)

		verifyScheduler = scheduler.NewVerifyScheduler(taskClient, stores.Settings, cfg.Verification)
		if err := verifyScheduler.Start(taskCtx); err != nil {
			log.Printf("WARNING: Failed to start corpus verification scheduler: %v", err)
		}
	} else if cfg.Verification.Enabled {
		log.Printf("WARNING: Corpus verification needs the task queue. Set 'TASKS_ENABLED=true' to enable it.")
	}

	gate := interstitial.NewGate(interstitial.LogPresenter{}, stores.Settings, cfg.Interstitial.Frequency, nil)

	routerCfg := http_controllers.RouterConfig{
		Corpus:         stores.Corpus,
		Chapters:       services.NewReader(stores.Corpus, titles),
		Navigator:      services.NewNavigator(stores.Corpus),
		Positions:      search,
		Bookmarks:      stores.Bookmarks,
		LastRead:       stores.Settings,
		CorpusStats:    stores.Corpus,
		BookmarkCounts: stores.Bookmarks,
		Interstitial:   gate,
		ImportPath:     cfg.Corpus.ImportPath,
		Verification:   stores.Settings,
		VerifySchedule: cfg.Verification.Schedule,
		ReadOnly:       cfg.HTTP.ReadOnly,
		HealthChecks:   healthChecks,
		Version:        version,
	}
	// Assigned separately so a disabled queue stays a nil interface
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
		routerCfg.VerificationScheduler = verifyScheduler
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if verifyScheduler != nil {
			verifyScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
