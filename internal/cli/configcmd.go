package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/puzzlesheet/pkg/config"
)

// configCommand creates the "config" command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change the configuration",
		Long: `Values are resolved in this order, later ones winning: built-in defaults,
the config file, a .env file in the working directory, PSG_* environment
variables and command line flags. set and reset only change the file.`,
	}
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configSetCommand())
	cmd.AddCommand(c.configResetCommand())
	cmd.AddCommand(c.configPathCommand())
	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(config.Keys()))
			for _, kv := range c.cfg.Values() {
				rows = append(rows, []string{kv[0], kv[1], config.EnvName(kv[0])})
			}
			printTable([]string{"KEY", "VALUE", "ENVIRONMENT"}, rows)
			printDetail("File: %s", c.cfgFrom)
			return nil
		},
	}
}

func (c *CLI) configSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a value in the config file",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return keyNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.cfgFrom)
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Save(c.cfgFrom); err != nil {
				return err
			}
			if err := c.cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			v, _ := cfg.Get(args[0])
			printSuccess("%s = %s", args[0], v)
			return nil
		},
	}
}

func (c *CLI) configResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [key]",
		Short: "Reset one value, or the whole file, to the defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			cfg, err := config.Load(c.cfgFrom)
			if err != nil {
				// a broken file can always be reset as a whole
				if name != "" {
					return err
				}
				cfg = config.Default()
			}
			if err := cfg.Reset(name); err != nil {
				return err
			}
			if err := cfg.Save(c.cfgFrom); err != nil {
				return err
			}
			if name == "" {
				c.cfg = cfg
				printSuccess("Reset the configuration")
				return nil
			}
			_ = c.cfg.Reset(name)
			v, _ := cfg.Get(name)
			printSuccess("%s = %s", name, v)
			return nil
		},
	}
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, c.cfgFrom)
			return nil
		},
	}
}

func keyNames() []string {
	keys := config.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.Name + "\t" + k.Help
	}
	return names
}
