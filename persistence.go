package bfvm

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/jinzhu/copier"
	gorm "gorm.io/gorm"

	bf "nickandperla.net/bfvm/brainfuck"
)

type PersistenceConfig struct {
	Name          string   `toml:"name"`
	Path          string   `toml:"path"`
	SQLitePragmas []string `toml:"sqlite_pragmas"`
	SQLiteOptions []string `toml:"sqlite_options"`
}

// RunRecord is one row of run history: which program ran, what it did to the
// tape, how it ended. MachineError is nil for clean runs.
type RunRecord struct {
	ID         uint
	CreatedAt  time.Time
	SourcePath string
	Program    string

	InstructionCount uint
	OverflowCount    uint
	UnderflowCount   uint
	FinalCellCount   uint
	DurationMicros   int64

	// Effective machine settings at run time.
	CellCount                    uint
	MaxInstructionExecutionCount uint

	MachineError *string
}

// NewRunRecord snapshots stats and the effective machine config into a row.
func NewRunRecord(sourcePath, program string, config *bf.MachineConfig, stats *RunStats, runErr error) *RunRecord {
	record := &RunRecord{
		SourcePath: sourcePath,
		Program:    program,
	}

	if stats != nil {
		if err := copier.Copy(record, stats); err != nil {
			log.Printf("Failed to copy run stats into record: %v", err)
		}
		record.DurationMicros = stats.Duration.Microseconds()
	}

	if config != nil {
		if err := copier.Copy(record, config); err != nil {
			log.Printf("Failed to copy machine config into record: %v", err)
		}
	}

	if runErr != nil {
		msg := runErr.Error()
		record.MachineError = &msg
	}

	return record
}

type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB
}

func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(config.Path) == 0 {
		return nil, fmt.Errorf("Path to database must be defined")
	}

	if len(config.Name) == 0 {
		return nil, fmt.Errorf("Name of database must be defined")
	}

	var pragmas strings.Builder
	pragma_count := len(config.SQLitePragmas) - 1
	for i, prag := range config.SQLitePragmas {
		pragmas.WriteString(fmt.Sprintf("_pragma=%s", prag))
		if i < pragma_count {
			pragmas.WriteRune('&')
		}
	}

	var options strings.Builder
	option_count := len(config.SQLiteOptions) - 1
	for i, opt := range config.SQLiteOptions {
		options.WriteString(opt)
		if i < option_count {
			options.WriteRune('&')
		}
	}

	var path strings.Builder
	path.WriteString(filepath.Join(config.Path, config.Name))
	if pragmas.Len() > 0 {
		path.WriteRune('?')
		path.WriteString(pragmas.String())
		if options.Len() > 0 {
			path.WriteRune('&')
			path.WriteString(options.String())
		}
	} else if options.Len() > 0 {
		path.WriteRune('?')
		path.WriteString(options.String())
	}

	db, err := gorm.Open(sqlite.Open(path.String()), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	db = db.Session(&gorm.Session{PrepareStmt: true})

	p := &Persistence{Config: config, DB: db}
	if err = p.initialize(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Persistence) initialize() error {
	if err := p.DB.AutoMigrate(
		&RunRecord{},
	); err != nil {
		return err
	}

	return nil
}

func (p *Persistence) Shutdown() {
	if sqldb, err := p.DB.DB(); err != nil {
		log.Fatalf("Failed to retrieve raw DB: %v", err)
	} else {
		sqldb.Close()
	}
}

func (p *Persistence) CreateRun(record *RunRecord) (uint, error) {
	if record == nil {
		return 0, fmt.Errorf("RunRecord cannot be nil")
	}

	if result := p.DB.Create(record); result.Error != nil {
		return 0, fmt.Errorf("Failed to call gorm.Create(): %w", result.Error)
	}

	return record.ID, nil
}

// RecentRuns returns up to limit history rows, newest first.
func (p *Persistence) RecentRuns(limit int) ([]RunRecord, error) {
	var records []RunRecord
	if result := p.DB.Order("id desc").Limit(limit).Find(&records); result.Error != nil {
		return nil, fmt.Errorf("Failed to query run history: %w", result.Error)
	}
	return records, nil
}

// HistorySummary aggregates the whole run history table.
type HistorySummary struct {
	RunCount            uint
	FailedCount         uint
	TotalInstructions   uint64
	MaxInstructionCount uint
	AvgInstructionCount float64
	TotalOverflowCount  uint64
	TotalUnderflowCount uint64
}

// Summarize queries aggregate counters over all recorded runs.
func (p *Persistence) Summarize() (*HistorySummary, error) {
	summary := &HistorySummary{}

	row := p.DB.Model(&RunRecord{}).Select(
		"count(*)",
		"count(machine_error)",
		"coalesce(sum(instruction_count), 0)",
		"coalesce(max(instruction_count), 0)",
		"coalesce(avg(instruction_count), 0)",
		"coalesce(sum(overflow_count), 0)",
		"coalesce(sum(underflow_count), 0)",
	).Row()

	if err := row.Scan(
		&summary.RunCount,
		&summary.FailedCount,
		&summary.TotalInstructions,
		&summary.MaxInstructionCount,
		&summary.AvgInstructionCount,
		&summary.TotalOverflowCount,
		&summary.TotalUnderflowCount,
	); err != nil {
		return nil, fmt.Errorf("Failed to scan history summary: %w", err)
	}

	return summary, nil
}
