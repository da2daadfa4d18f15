package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fumin/ppm/utils"
	"github.com/smira/commander"
	"github.com/smira/flag"
)

func ppmConfigShow(cmd *commander.Command, args []string) error {
	if len(args) != 0 {
		cmd.Usage()
		return commander.ErrCommandError
	}

	encoded, err := json.MarshalIndent(&context.config, "", "  ")
	if err != nil {
		return fmt.Errorf("error processing configuration: %s", err)
	}
	fmt.Println(string(encoded))
	return nil
}

func ppmConfigSave(cmd *commander.Command, args []string) error {
	if len(args) != 1 {
		cmd.Usage()
		return commander.ErrCommandError
	}

	if err := utils.SaveConfig(args[0], &context.config); err != nil {
		return fmt.Errorf("unable to save config: %s", err)
	}
	return nil
}

func makeCmdConfig() *commander.Command {
	return &commander.Command{
		UsageLine: "config",
		Short:     "manage compress configuration",
		Subcommands: []*commander.Command{
			makeCmdConfigShow(),
			makeCmdConfigSave(),
		},
		Flag: *flag.NewFlagSet("compress-config", flag.ExitOnError),
	}
}

func makeCmdConfigShow() *commander.Command {
	return &commander.Command{
		Run:       ppmConfigShow,
		UsageLine: "show",
		Short:     "show current configuration",
		Long: `
Command show displays the configuration in effect: built-in defaults,
overridden by the configuration file, overridden by flags.

Example:

  $ compress config show -order=4
`,
		Flag: *flag.NewFlagSet("compress-config-show", flag.ExitOnError),
	}
}

func makeCmdConfigSave() *commander.Command {
	return &commander.Command{
		Run:       ppmConfigSave,
		UsageLine: "save <file>",
		Short:     "save current configuration",
		Long: `
Command save writes the configuration in effect to <file> as JSON,
which can be used as ~/.ppm.conf or passed with -config.

Example:

  $ compress config save -len=20 -mode=b ~/.ppm.conf
`,
		Flag: *flag.NewFlagSet("compress-config-save", flag.ExitOnError),
	}
}
