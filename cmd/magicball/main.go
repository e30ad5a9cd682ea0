package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/spencer-p/tidechart/pkg/ball"
)

var rootCmd = &cobra.Command{
	Use:          "magicball",
	Short:        "Steer a coloured ball with the arrow keys",
	Long:         `Arrow keys move the ball, the mouse pointer picks its colour, q quits.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(ball.NewModel(), tea.WithAltScreen(), tea.WithMouseAllMotion())
		_, err := p.Run()
		return err
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err.Error())
	}
}
