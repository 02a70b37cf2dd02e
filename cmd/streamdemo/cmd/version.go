package cmd

import "fmt"

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the streamdemo version and build time.",
		Usage: "streamdemo version",
		Run: func(env *Env, args []string) error {
			fmt.Fprintf(env.Stdout, "streamdemo version %s (built %s, %s mode)\n", Version, BuildTime, env.Config.Mode)
			return nil
		},
	})
}
