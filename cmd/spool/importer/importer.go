// Package importcmder provides the `spool import` CLI command.
package importcmder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentlogco/spool/cmd/spool/sqlitepath"
	"github.com/agentlogco/spool/pkg/cliui"
	"github.com/agentlogco/spool/pkg/config"
	"github.com/agentlogco/spool/pkg/connector/openaitrace"
	"github.com/agentlogco/spool/pkg/eventstream"
	"github.com/agentlogco/spool/pkg/eventstream/kafka"
	"github.com/agentlogco/spool/pkg/ontology"
	"github.com/agentlogco/spool/pkg/store/sqlite"
)

type importCommander struct {
	sqlitePath string
	createdBy  string
	publish    bool
	brokers    string
	topic      string
}

const importLongDesc string = `Convert a trace file and store the resulting run.

Reads an OpenAI-style trace from the given JSON file, converts it into
the layered run ontology, and writes the run to the SQLite database.
With --publish (or events.enabled in the config), a run-imported event
is also published to the configured Kafka topic.

Examples:
  spool import trace.json
  spool import trace.json -s spool.db
  spool import trace.json --publish --brokers localhost:9092`

const importShortDesc string = "Convert a trace file and store the run"

func NewImportCmd() *cobra.Command {
	cmder := &importCommander{}

	cmd := &cobra.Command{
		Use:   "import <trace.json>",
		Short: importShortDesc,
		Long:  importLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return cmder.run(cmd.Context(), args[0], configDir, cmd.Flags().Changed("publish"))
		},
	}

	cmd.Flags().StringVarP(&cmder.sqlitePath, "sqlite", "s", "", "Path to SQLite database")
	cmd.Flags().StringVar(&cmder.createdBy, "created-by", "", "Value for the agent metadata created_by field")
	cmd.Flags().BoolVar(&cmder.publish, "publish", false, "Publish a run-imported event after storing")
	cmd.Flags().StringVar(&cmder.brokers, "brokers", "", "Comma-separated Kafka broker addresses")
	cmd.Flags().StringVar(&cmder.topic, "topic", "", "Kafka topic for run events")

	return cmd
}

func (c *importCommander) run(ctx context.Context, path, configDir string, publishSet bool) error {
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading trace file: %w", err)
	}

	converter := openaitrace.New(openaitrace.WithCreatedBy(c.resolveCreatedBy(cfg)))

	var run *ontology.Run
	if err := cliui.Step(os.Stdout, "Converting trace", func() error {
		var convErr error
		run, convErr = converter.ConvertJSON(data)
		return convErr
	}); err != nil {
		return err
	}

	dbPath := c.resolveSQLitePath(cfg)
	var inserted bool
	if err := cliui.Step(os.Stdout, fmt.Sprintf("Storing run %s", run.ID), func() error {
		storer, storeErr := sqlite.NewDriver(dbPath)
		if storeErr != nil {
			return storeErr
		}
		defer storer.Close()

		inserted, storeErr = storer.Put(ctx, run)
		return storeErr
	}); err != nil {
		return err
	}

	shouldPublish := cfg.Events.Enabled
	if publishSet {
		shouldPublish = c.publish
	}
	if shouldPublish {
		if err := cliui.Step(os.Stdout, "Publishing run event", func() error {
			publisher := kafka.NewPublisher(c.resolveBrokers(cfg), c.resolveTopic(cfg))
			defer publisher.Close()

			event := eventstream.NewRunImportedEvent(run, eventstream.EventSource{
				Connector: "openai-trace",
			})
			return publisher.PublishRun(ctx, event)
		}); err != nil {
			return err
		}
	}

	verb := "Imported"
	if !inserted {
		verb = "Updated"
	}
	fmt.Printf("\n  %s %s run %s (%d steps, %d messages, %d actions) into %s\n\n",
		cliui.SuccessMark,
		verb,
		cliui.ValueStyle.Render(run.ID),
		len(run.Steps),
		run.TotalMessages,
		run.TotalActions,
		cliui.DimStyle.Render(dbPath),
	)
	return nil
}

func loadConfig(configDir string) (*config.Config, error) {
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg, err := cfger.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func (c *importCommander) resolveCreatedBy(cfg *config.Config) string {
	if c.createdBy != "" {
		return c.createdBy
	}
	return cfg.Connector.CreatedBy
}

func (c *importCommander) resolveSQLitePath(cfg *config.Config) string {
	if strings.TrimSpace(c.sqlitePath) != "" {
		return c.sqlitePath
	}
	if cfg.Storage.SQLitePath != "" {
		return cfg.Storage.SQLitePath
	}

	path, err := sqlitepath.ResolveSQLitePath("")
	if err == nil {
		return path
	}

	return "spool.db"
}

func (c *importCommander) resolveBrokers(cfg *config.Config) []string {
	if c.brokers != "" {
		return config.EventsConfig{Brokers: c.brokers}.BrokerList()
	}
	return cfg.Events.BrokerList()
}

func (c *importCommander) resolveTopic(cfg *config.Config) string {
	if c.topic != "" {
		return c.topic
	}
	return cfg.Events.Topic
}
