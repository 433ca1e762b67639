package main

import (
	"fmt"
	"os"

	"github.com/schemaforge/xsd2erd/internal/app"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "xsd2erd",
	Short: "Generate relational schemas and ER diagrams from XSD files",
	Long:  `A CLI that translates XML Schema documents into dependency-ordered PostgreSQL DDL and PlantUML entity-relationship diagrams, and can apply the result to a database.`,
}

var generateCmd = &cobra.Command{
	Use:   "generate <schema.xsd> [more.xsd ...]",
	Short: "Print CREATE TABLE statements and the ER diagram",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGenerate,
}

var diagramCmd = &cobra.Command{
	Use:   "diagram <schema.xsd> [more.xsd ...]",
	Short: "Print only the PlantUML ER diagram",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiagram,
}

var applyCmd = &cobra.Command{
	Use:   "apply <schema.xsd> [more.xsd ...]",
	Short: "Execute the generated schema against the configured database",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runApply,
}

var workflowService = app.NewService()

var (
	configPath string
	failFlag   bool
	asIsFlag   bool
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&failFlag, "fail", false, "Fail on unknown XSD types instead of falling back")
	rootCmd.PersistentFlags().BoolVar(&asIsFlag, "as-is", false, "Keep identifiers as-is without normalization")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(diagramCmd)
	rootCmd.AddCommand(applyCmd)

	cobra.OnInitialize(func() {
		rootCmd.SilenceUsage = true
		rootCmd.SilenceErrors = true
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func options() app.Options {
	return app.Options{
		ConfigPath: configPath,
		Strict:     failFlag,
		AsIs:       asIsFlag,
		Verbose:    verbose,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	return workflowService.Generate(args, options())
}

func runDiagram(cmd *cobra.Command, args []string) error {
	return workflowService.Diagram(args, options())
}

func runApply(cmd *cobra.Command, args []string) error {
	return workflowService.Apply(args, options())
}
