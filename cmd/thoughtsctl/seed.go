package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var seedMessages = []string{
	"The smell of fresh coffee in the morning",
	"A friend called me just to say hi",
	"Finally fixed that bug that haunted me all week",
	"Sunshine after three days of rain",
	"My dog greeted me like I was gone for a year",
	"Found money in an old jacket pocket",
	"The first bite of a really good sandwich",
	"Someone held the door open for me today",
	"Finished a book I could not put down",
	"A stranger complimented my terrible parking",
}

func init() {
	var count int
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the feed with sample thoughts",
		Long:  "Registers a throwaway account and posts sample messages through the public API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 || count > len(seedMessages) {
				return fmt.Errorf("--count must be between 1 and %d", len(seedMessages))
			}

			anon := newAPIClient(apiFlag, "")
			username := "seeder-" + uuid.New().String()[:8]
			password := uuid.New().String()

			if _, err := anon.do(http.MethodPost, "/auth/register", map[string]string{
				"username": username,
				"email":    username + "@example.com",
				"password": password,
			}); err != nil {
				return fmt.Errorf("seed register: %w", err)
			}

			env, err := anon.do(http.MethodPost, "/auth/login", map[string]string{
				"username": username,
				"password": password,
			})
			if err != nil {
				return fmt.Errorf("seed login: %w", err)
			}
			var login struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal(env.Response, &login); err != nil {
				return fmt.Errorf("seed login response: %w", err)
			}

			authed := newAPIClient(apiFlag, login.Token)
			for _, msg := range seedMessages[:count] {
				if _, err := authed.do(http.MethodPost, "/thoughts", map[string]string{"message": msg}); err != nil {
					return fmt.Errorf("seed post: %w", err)
				}
			}
			fmt.Fprintf(os.Stdout, "seeded %d thoughts as %s\n", count, username)
			return nil
		},
	}
	seedCmd.Flags().IntVarP(&count, "count", "c", len(seedMessages), "Number of sample thoughts to post")
	rootCmd.AddCommand(seedCmd)
}
