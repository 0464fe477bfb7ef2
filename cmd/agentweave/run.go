package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/agentweave/agent"
)

var (
	runConfigPath   string
	runSystemPrompt string
	runAgentType    string
	runMaxTurns     int
	runJSON         bool
)

var runCmd = &cobra.Command{
	Use:   "run [prompt]",
	Short: "Run a single agent invocation and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(runConfigPath)
		if err != nil {
			return err
		}
		eng, err := buildEngine(cfg)
		if err != nil {
			return err
		}

		agentCfg := agent.Config{Name: "cli", SystemPrompt: runSystemPrompt, MaxTurns: runMaxTurns}
		if runAgentType != "" {
			found := false
			for _, def := range cfg.Agents {
				if def.Name == runAgentType {
					agentCfg = def.AgentConfig()
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("unknown agent %q in config", runAgentType)
			}
		}

		res := agent.New(agentCfg, eng).Run(cmd.Context(), strings.Join(args, " "))

		if runJSON {
			out, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			return nil
		}
		if !res.Success {
			return fmt.Errorf("run failed (%s): %s", res.ErrorCode, res.ErrorMessage)
		}
		cmd.Println(res.Text)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to YAML config file")
	runCmd.Flags().StringVarP(&runSystemPrompt, "system", "s", "", "system prompt for an ad hoc agent")
	runCmd.Flags().StringVarP(&runAgentType, "agent", "a", "", "named agent from the config file")
	runCmd.Flags().IntVar(&runMaxTurns, "max-turns", 0, "turn budget override")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the full result as JSON")
}
