package cmds

import (
	"context"
	"fmt"
	"intranet/internal/flow"
	"intranet/internal/ports"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

func newClientsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Create and look up client records through the API",
	}

	var file, selectExpr string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create clients from a YAML or JSON file",
		Long: "Reads a YAML or JSON document holding one client object or a list of them.\n" +
			"--select narrows the document with a JMESPath expression first.\n" +
			"Values must be strings; quote phone numbers in YAML.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := e.apiClient()
			if err != nil {
				return err
			}
			_, err = PutClients(cmd.Context(), client, file, selectExpr, cmd.OutOrStdout())
			return err
		},
	}
	create.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file with client records")
	create.Flags().StringVar(&selectExpr, "select", "", "JMESPath expression selecting the records")
	_ = create.MarkFlagRequired("file")

	get := &cobra.Command{
		Use:   "get CLIENT_ID",
		Short: "Print one client record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := e.apiClient()
			if err != nil {
				return err
			}
			return GetClient(cmd.Context(), client, args[0], cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(create, get)
	return cmd
}

// PutClients loads the records in path, optionally narrowed by selectExpr,
// and creates them one by one. It stops at the first failure and returns how
// many were created before it.
func PutClients(ctx context.Context, api ports.ClientAPI, path, selectExpr string, out io.Writer) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	records, err := flow.SelectRecords(selectExpr, doc)
	if err != nil {
		return 0, fmt.Errorf("select records: %w", err)
	}

	created := 0
	for i, fields := range records {
		rec, err := api.Create(ctx, fields)
		if err != nil {
			return created, fmt.Errorf("record %d: %w (%d created)", i, err, created)
		}
		created++
		_, _ = fmt.Fprintf(out, "created %s\n", rec.ClientID)
	}
	return created, nil
}

// GetClient prints the record for clientID as indented JSON.
func GetClient(ctx context.Context, api ports.ClientAPI, clientID string, out io.Writer) error {
	rec, err := api.Get(ctx, clientID)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}
