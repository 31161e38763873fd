// Package convertcmder provides the `spool convert` CLI command.
package convertcmder

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentlogco/spool/pkg/config"
	"github.com/agentlogco/spool/pkg/connector/openaitrace"
	"github.com/agentlogco/spool/pkg/ontology"
	"github.com/agentlogco/spool/pkg/utils"
)

type convertCommander struct {
	out       string
	tree      bool
	createdBy string
}

const convertLongDesc string = `Convert an agent trace file into a run document.

Reads an OpenAI-style trace from the given JSON file, converts it into
the layered run ontology, and prints the resulting document as JSON.

Examples:
  spool convert trace.json
  spool convert trace.json --tree
  spool convert trace.json -o run.json`

const convertShortDesc string = "Convert a trace file to a run document"

func NewConvertCmd() *cobra.Command {
	cmder := &convertCommander{}

	cmd := &cobra.Command{
		Use:   "convert <trace.json>",
		Short: convertShortDesc,
		Long:  convertLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return cmder.run(args[0], configDir)
		},
	}

	cmd.Flags().StringVarP(&cmder.out, "out", "o", "", "Write the run document to a file instead of stdout")
	cmd.Flags().BoolVar(&cmder.tree, "tree", false, "Print the step tree after the document")
	cmd.Flags().StringVar(&cmder.createdBy, "created-by", "", "Value for the agent metadata created_by field")

	return cmd
}

func (c *convertCommander) run(path, configDir string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading trace file: %w", err)
	}

	converter := openaitrace.New(openaitrace.WithCreatedBy(c.resolveCreatedBy(configDir)))

	run, err := converter.ConvertJSON(data)
	if err != nil {
		return fmt.Errorf("converting trace: %w", err)
	}

	doc, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run: %w", err)
	}

	if c.out != "" {
		if err := os.WriteFile(c.out, append(doc, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing run document: %w", err)
		}
	} else {
		fmt.Println(string(doc))
	}

	if c.tree {
		fmt.Println("\nTree:")
		for _, step := range run.Steps {
			printTree(step, 2)
		}
	}

	return nil
}

func (c *convertCommander) resolveCreatedBy(configDir string) string {
	if c.createdBy != "" {
		return c.createdBy
	}

	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return ""
	}
	cfg, err := cfger.LoadConfig()
	if err != nil {
		return ""
	}
	return cfg.Connector.CreatedBy
}

func printTree(step ontology.Step, indent int) {
	prefix := strings.Repeat(" ", indent)
	name := step.Name
	if name == "" {
		name = "step"
	}
	fmt.Printf("%s- %s (%s)\n", prefix, name, step.ID)

	if step.InteractionState != nil {
		for _, msg := range step.InteractionState.RecentMessages {
			role := string(msg.Type)
			if r, ok := msg.Metadata["role"].(string); ok {
				role = r
			}
			content, _ := msg.Content.(string)
			fmt.Printf("%s  message[%s]: %s\n", prefix, role, utils.Truncate(content, 80))
		}
	}

	if step.ActionState != nil {
		for _, exec := range step.ActionState.CompletedActions {
			if exec.ToolInvocation != nil {
				fmt.Printf("%s  tool[%s]\n", prefix, exec.ToolInvocation.ToolName)
			}
		}
	}

	for _, sub := range step.SubSteps {
		printTree(sub, indent+2)
	}
}
