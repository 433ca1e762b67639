// Package app wires configuration, parsing, generation and output into the
// workflows the CLI exposes.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schemaforge/xsd2erd/internal/config"
	"github.com/schemaforge/xsd2erd/internal/database"
	"github.com/schemaforge/xsd2erd/internal/diagram"
	"github.com/schemaforge/xsd2erd/internal/executor"
	"github.com/schemaforge/xsd2erd/internal/relational"
	"github.com/schemaforge/xsd2erd/internal/sqltype"
	"github.com/schemaforge/xsd2erd/internal/xsd"
	"github.com/schemaforge/xsd2erd/pkg/logger"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Options are the per-invocation settings collected from CLI flags. Flag
// values override whatever the config file carries.
type Options struct {
	ConfigPath string
	Strict     bool
	AsIs       bool
	Verbose    bool
}

// Generate prints the dependency-ordered DDL for the given schema files to
// stdout, followed by the entity-relationship diagram.
func (s *Service) Generate(files []string, opts Options) error {
	log := logger.NewLogger(opts.Verbose)

	result, err := s.run(files, opts, log)
	if err != nil {
		return err
	}

	for _, stmt := range result.Statements() {
		fmt.Println(stmt)
	}
	fmt.Println()
	fmt.Print(diagram.PlantUML(result.Snapshot))
	return nil
}

// Diagram prints only the entity-relationship diagram.
func (s *Service) Diagram(files []string, opts Options) error {
	log := logger.NewLogger(opts.Verbose)

	result, err := s.run(files, opts, log)
	if err != nil {
		return err
	}

	fmt.Print(diagram.PlantUML(result.Snapshot))
	return nil
}

// Apply generates the schema and executes it against the configured
// database in one transaction.
func (s *Service) Apply(files []string, opts Options) error {
	log := logger.NewLogger(opts.Verbose)

	if opts.ConfigPath == "" {
		return fmt.Errorf("apply requires a configuration file with database settings")
	}
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	result, err := s.generate(files, generatorConfig(cfg, opts))
	if err != nil {
		return err
	}
	logWarnings(log, result)

	conn, err := database.NewConnection(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close()

	log.Infof("applying schema to %s", conn.GetDatabaseName())
	return executor.New(conn, log).Apply(result)
}

func (s *Service) run(files []string, opts Options, log *logger.Logger) (*relational.Result, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.LoadConfig(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("cannot load config: %w", err)
		}
		cfg = loaded
	}

	result, err := s.generate(files, generatorConfig(cfg, opts))
	if err != nil {
		return nil, err
	}
	logWarnings(log, result)
	return result, nil
}

func (s *Service) generate(files []string, genCfg relational.Config) (*relational.Result, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no schema files given")
	}

	inputs := make([]relational.Input, 0, len(files))
	for _, path := range files {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("cannot read schema file: %w", err)
		}
		doc, err := xsd.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		inputs = append(inputs, relational.Input{
			Doc:       doc,
			RootTable: rootTableName(path),
			Types:     sqltype.NewMapper(doc.UserTypes()),
		})
	}

	result, err := relational.Generate(inputs, genCfg)
	if err != nil {
		return nil, fmt.Errorf("schema generation failed: %w", err)
	}
	return result, nil
}

func generatorConfig(cfg *config.Config, opts Options) relational.Config {
	return relational.Config{
		Strict:       cfg.Generator.Strict || opts.Strict,
		Normalize:    !(cfg.Generator.AsIs || opts.AsIs),
		MaxDepth:     cfg.Generator.MaxDepth,
		CycleBudget:  cfg.Generator.CycleBudget,
		FallbackType: cfg.Generator.FallbackType,
	}
}

func logWarnings(log *logger.Logger, result *relational.Result) {
	for _, w := range result.Warnings {
		log.Warnf("%s", w)
	}
}

// rootTableName derives the synthetic root table's name from the schema
// file name.
func rootTableName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		return "Schema"
	}
	return base
}
