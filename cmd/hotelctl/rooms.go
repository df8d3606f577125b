package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Show free and occupied rooms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := newClient().RoomAvailability(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var roomCmd = &cobra.Command{
	Use:   "room [room-id]",
	Short: "Show details for a single room",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := newClient().RoomInfo(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var (
	flagGuestName  string
	flagGuestEmail string
	flagGuestPhone string
)

var bookCmd = &cobra.Command{
	Use:   "book [room-id]",
	Short: "Book a room for a guest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		guest := map[string]any{
			"name": strings.TrimSpace(flagGuestName),
		}
		if flagGuestEmail != "" {
			guest["email"] = flagGuestEmail
		}
		if flagGuestPhone != "" {
			guest["phone"] = flagGuestPhone
		}

		result, err := newClient().BookRoom(cmd.Context(), args[0], guest)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	bookCmd.Flags().StringVar(&flagGuestName, "name", "", "guest name")
	bookCmd.Flags().StringVar(&flagGuestEmail, "email", "", "guest email")
	bookCmd.Flags().StringVar(&flagGuestPhone, "phone", "", "guest phone")
	_ = bookCmd.MarkFlagRequired("name")
}
