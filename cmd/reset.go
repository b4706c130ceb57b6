package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minqi/vocadrill/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved session snapshot and last-session record",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() { _ = st.Close() }()

		if err := st.ClearResume(); err != nil {
			return err
		}
		if err := st.ClearLastSession(); err != nil {
			return err
		}
		fmt.Println("Saved session state cleared.")
		return nil
	},
}
