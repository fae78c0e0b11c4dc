package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	var username, email, password string

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || email == "" || password == "" {
				return fmt.Errorf("--username, --email and --password required")
			}
			env, err := newAPIClient(apiFlag, "").do(http.MethodPost, "/auth/register", map[string]string{
				"username": username,
				"email":    email,
				"password": password,
			})
			if err != nil {
				return err
			}
			return printResponse(env)
		},
	}
	registerCmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	registerCmd.Flags().StringVarP(&email, "email", "e", "", "Email (required)")
	registerCmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	rootCmd.AddCommand(registerCmd)

	var loginUsername, loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loginUsername == "" || loginPassword == "" {
				return fmt.Errorf("--username and --password required")
			}
			env, err := newAPIClient(apiFlag, "").do(http.MethodPost, "/auth/login", map[string]string{
				"username": loginUsername,
				"password": loginPassword,
			})
			if err != nil {
				return err
			}
			return printResponse(env)
		},
	}
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (required)")
	rootCmd.AddCommand(loginCmd)

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated profile and liked thought ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			env, err := newAPIClient(apiFlag, tokenFlag).do(http.MethodGet, "/auth/me", nil)
			if err != nil {
				return err
			}
			return printResponse(env)
		},
	}
	rootCmd.AddCommand(meCmd)
}
