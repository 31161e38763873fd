// Package servecmder provides the serve command for running the API server.
package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agentlogco/spool/api"
	"github.com/agentlogco/spool/pkg/config"
	"github.com/agentlogco/spool/pkg/connector/openaitrace"
	"github.com/agentlogco/spool/pkg/eventstream"
	"github.com/agentlogco/spool/pkg/eventstream/kafka"
	"github.com/agentlogco/spool/pkg/eventstream/nop"
	"github.com/agentlogco/spool/pkg/logger"
	"github.com/agentlogco/spool/pkg/store"
	"github.com/agentlogco/spool/pkg/store/inmemory"
	"github.com/agentlogco/spool/pkg/store/sqlite"
)

type ServeCommander struct {
	apiListen  string
	sqlitePath string
	events     bool
	brokers    string
	topic      string
	createdBy  string
	debug      bool
	logger     *zap.Logger
}

// serveFlags defines the flags the serve command registers and the viper
// keys they bind to. Resolution order is flag > env > config file > default.
var serveFlags = config.FlagSet{
	config.FlagAPIListen: {
		Name:        "api-listen",
		Shorthand:   "a",
		ViperKey:    "api.listen",
		Description: "Address for API server to listen on",
	},
	config.FlagSQLite: {
		Name:        "sqlite",
		Shorthand:   "s",
		ViperKey:    "storage.sqlite_path",
		Description: "Path to SQLite database (default: in-memory)",
	},
	config.FlagEventsEnabled: {
		Name:        "events",
		ViperKey:    "events.enabled",
		Description: "Publish run-imported events to Kafka",
	},
	config.FlagEventsBrokers: {
		Name:        "brokers",
		ViperKey:    "events.brokers",
		Description: "Comma-separated Kafka broker addresses",
	},
	config.FlagEventsTopic: {
		Name:        "topic",
		ViperKey:    "events.topic",
		Description: "Kafka topic for run events",
	},
	config.FlagCreatedBy: {
		Name:        "created-by",
		ViperKey:    "connector.created_by",
		Description: "Value for the agent metadata created_by field",
	},
}

var serveFlagKeys = []string{
	config.FlagAPIListen,
	config.FlagSQLite,
	config.FlagEventsEnabled,
	config.FlagEventsBrokers,
	config.FlagEventsTopic,
	config.FlagCreatedBy,
}

const serveLongDesc string = `Run the Spool API server.

The server accepts trace imports and serves stored runs, their
timelines, metrics, and individual steps.

Examples:
  spool serve
  spool serve -a :8081 -s spool.db
  spool serve --events --brokers localhost:9092`

const serveShortDesc string = "Run the Spool API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, serveFlags, config.FlagAPIListen, &cmder.apiListen)
	config.AddStringFlag(cmd, serveFlags, config.FlagSQLite, &cmder.sqlitePath)
	config.AddBoolFlag(cmd, serveFlags, config.FlagEventsEnabled, &cmder.events)
	config.AddStringFlag(cmd, serveFlags, config.FlagEventsBrokers, &cmder.brokers)
	config.AddStringFlag(cmd, serveFlags, config.FlagEventsTopic, &cmder.topic)
	config.AddStringFlag(cmd, serveFlags, config.FlagCreatedBy, &cmder.createdBy)

	return cmd
}

// resolve connects the registered flags to viper and reads back the
// resolved values so config file and environment settings apply when a
// flag was not passed on the command line.
func (c *ServeCommander) resolve(cmd *cobra.Command) error {
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	config.BindRegisteredFlags(v, cmd, serveFlags, serveFlagKeys)

	c.apiListen = v.GetString("api.listen")
	c.sqlitePath = v.GetString("storage.sqlite_path")
	c.events = v.GetBool("events.enabled")
	c.brokers = v.GetString("events.brokers")
	c.topic = v.GetString("events.topic")
	c.createdBy = v.GetString("connector.created_by")

	return nil
}

func (c *ServeCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	storer, err := c.createStorer()
	if err != nil {
		return err
	}
	defer storer.Close()

	publisher := c.createPublisher()
	defer publisher.Close()

	converter := openaitrace.New(openaitrace.WithCreatedBy(c.createdBy))

	apiConfig := api.Config{
		ListenAddr: c.apiListen,
	}
	apiServer := api.NewServer(apiConfig, storer, converter, publisher, c.logger)

	c.logger.Info("starting api server",
		zap.String("api_addr", c.apiListen),
	)

	errChan := make(chan error, 1)

	go func() {
		if err := apiServer.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return apiServer.Shutdown()
	}
}

func (c *ServeCommander) createStorer() (store.Driver, error) {
	if c.sqlitePath != "" {
		storer, err := sqlite.NewDriver(c.sqlitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite storer: %w", err)
		}
		c.logger.Info("using SQLite storage", zap.String("path", c.sqlitePath))
		return storer, nil
	}

	c.logger.Info("using in-memory storage")
	return inmemory.NewDriver(), nil
}

func (c *ServeCommander) createPublisher() eventstream.Publisher {
	if !c.events {
		return nop.NewPublisher()
	}

	brokers := config.EventsConfig{Brokers: c.brokers}.BrokerList()
	c.logger.Info("publishing run events",
		zap.Strings("brokers", brokers),
		zap.String("topic", c.topic),
	)
	return kafka.NewPublisher(brokers, c.topic)
}
