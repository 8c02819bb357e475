// Package wire provides dependency injection for the dpgen application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/dpgen/internal/adapters/cli"
	"github.com/example/dpgen/internal/adapters/filesystem"
	"github.com/example/dpgen/internal/adapters/process"
	"github.com/example/dpgen/internal/adapters/sqlite"
	"github.com/example/dpgen/internal/app"
	"github.com/example/dpgen/internal/db"
	"github.com/example/dpgen/internal/ports/primary"
)

var (
	partitionService primary.PartitionService
	historyService   primary.HistoryService
	spispecService   primary.SpispecService
	once             sync.Once
	spispecOnce      sync.Once
)

// PartitionService returns the singleton PartitionService instance.
func PartitionService() primary.PartitionService {
	once.Do(initServices)
	return partitionService
}

// HistoryService returns the singleton HistoryService instance.
func HistoryService() primary.HistoryService {
	once.Do(initServices)
	return historyService
}

// SpispecService returns the singleton SpispecService instance.
// It needs no database, so it is initialized separately.
func SpispecService() primary.SpispecService {
	spispecOnce.Do(func() {
		spispecService = app.NewSpispecService(filesystem.NewFileStore())
	})
	return spispecService
}

// initServices initializes all database-backed services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	// Get database connection
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create adapters (secondary ports)
	buildRepo := sqlite.NewBuildRepository(database)
	files := filesystem.NewFileStore()
	invoker := process.NewInvoker("")

	// Create services (primary ports implementation)
	partitionService = app.NewPartitionService(invoker, files, buildRepo)
	historyService = app.NewHistoryService(buildRepo)
}

// PartitionAdapter returns a new PartitionAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func PartitionAdapter() *cliadapter.PartitionAdapter {
	return PartitionAdapterWithOutput(os.Stdout)
}

// PartitionAdapterWithOutput returns a new PartitionAdapter writing to the given output.
func PartitionAdapterWithOutput(out io.Writer) *cliadapter.PartitionAdapter {
	return cliadapter.NewPartitionAdapter(PartitionService(), out)
}

// HistoryAdapter returns a new HistoryAdapter writing to stdout.
func HistoryAdapter() *cliadapter.HistoryAdapter {
	return cliadapter.NewHistoryAdapter(HistoryService(), os.Stdout)
}

// SpispecAdapter returns a new SpispecAdapter writing to stdout.
func SpispecAdapter() *cliadapter.SpispecAdapter {
	return cliadapter.NewSpispecAdapter(SpispecService(), os.Stdout)
}
