package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	postCmd := &cobra.Command{
		Use:   "post MESSAGE",
		Short: "Post a new thought",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			env, err := newAPIClient(apiFlag, tokenFlag).do(http.MethodPost, "/thoughts", map[string]string{
				"message": args[0],
			})
			if err != nil {
				return err
			}
			return printResponse(env)
		},
	}
	rootCmd.AddCommand(postCmd)

	var page, limit, minHearts int
	var sortBy, order string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List thoughts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient(apiFlag, "")
			q := "/thoughts?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
			if minHearts > 0 {
				q += "&minHearts=" + strconv.Itoa(minHearts)
			}
			if sortBy != "" {
				q += "&sortBy=" + sortBy
			}
			if order != "" {
				q += "&order=" + order
			}
			env, err := c.do(http.MethodGet, q, nil)
			if err != nil {
				return err
			}
			return printResponse(env)
		},
	}
	listCmd.Flags().IntVar(&page, "page", 1, "Page number")
	listCmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	listCmd.Flags().IntVar(&minHearts, "min-hearts", 0, "Only thoughts with at least this many hearts")
	listCmd.Flags().StringVar(&sortBy, "sort-by", "", "Sort field: createdAt or hearts")
	listCmd.Flags().StringVar(&order, "order", "", "Sort order: asc or desc")
	rootCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get THOUGHT_ID",
		Short: "Get a single thought",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAPIClient(apiFlag, "").do(http.MethodGet, "/thoughts/"+args[0], nil)
			if err != nil {
				return err
			}
			return printResponse(env)
		},
	}
	rootCmd.AddCommand(getCmd)

	likeCmd := &cobra.Command{
		Use:   "like THOUGHT_ID",
		Short: "Like a thought",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			env, err := newAPIClient(apiFlag, tokenFlag).do(http.MethodPost, "/thoughts/"+args[0]+"/like", nil)
			if err != nil {
				return err
			}
			return printResponse(env)
		},
	}
	rootCmd.AddCommand(likeCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete THOUGHT_ID",
		Short: "Delete one of your thoughts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			env, err := newAPIClient(apiFlag, tokenFlag).do(http.MethodDelete, "/thoughts/"+args[0], nil)
			if err != nil {
				return err
			}
			return printResponse(env)
		},
	}
	rootCmd.AddCommand(deleteCmd)
}
