package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gatestack/pkg/circuitfile"
	"github.com/matzehuels/gatestack/pkg/httputil"
	"github.com/matzehuels/gatestack/pkg/observability"
	"github.com/matzehuels/gatestack/pkg/share"
)

const defaultServerURL = "http://localhost:8080"

// shareCommand creates the share command for publishing circuits to and
// fetching them from a gatestack server.
func (c *CLI) shareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Publish or fetch circuits on a gatestack server",
	}

	cmd.PersistentFlags().String("server", defaultServerURL, "server base URL")

	cmd.AddCommand(c.sharePublishCommand())
	cmd.AddCommand(c.shareFetchCommand())

	return cmd
}

func (c *CLI) sharePublishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "publish [file]",
		Short: "Publish a circuit and print its shareable URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverURL, _ := cmd.Flags().GetString("server")

			doc, err := circuitfile.ParseFile(args[0])
			if err != nil {
				return err
			}
			body, err := doc.MarshalJSON()
			if err != nil {
				return err
			}

			var published struct {
				ID        string    `json:"id"`
				URL       string    `json:"url"`
				ExpiresAt time.Time `json:"expires_at"`
			}
			err = httputil.RetryWithBackoff(cmd.Context(), func() error {
				return postJSON(cmd.Context(), serverURL+"/v1/circuits", body, &published)
			})
			if err != nil {
				return err
			}

			printSuccess("Published %s", args[0])
			printDetail("ID: %s", published.ID)
			fmt.Println("  " + StyleLink.Render(serverURL+published.URL))
			if !published.ExpiresAt.IsZero() {
				printDetail("Expires: %s", published.ExpiresAt.Format(time.RFC3339))
			}
			printNextStep("Fetch it back", fmt.Sprintf("gatestack share fetch %s", published.ID))
			return nil
		},
	}
}

func (c *CLI) shareFetchCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fetch [id]",
		Short: "Fetch a published circuit document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverURL, _ := cmd.Flags().GetString("server")

			var rec share.Record
			err := httputil.RetryWithBackoff(cmd.Context(), func() error {
				return getJSON(cmd.Context(), serverURL+"/v1/circuits/"+args[0], &rec)
			})
			if err != nil {
				return err
			}

			data, err := rec.Document.MarshalTOML()
			if err != nil {
				return err
			}
			if output == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Fetched circuit %s", rec.ID)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func postJSON(ctx context.Context, url string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return doJSON(req, out)
}

func getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return doJSON(req, out)
}

// doJSON executes the request and decodes a JSON response. Transport
// failures and retryable status codes come back as RetryableError so the
// surrounding retry loop backs off and tries again.
func doJSON(req *http.Request, out any) error {
	ctx := req.Context()
	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return &httputil.RetryableError{Err: err}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if httputil.RetryableStatus(resp.StatusCode) {
		return &httputil.RetryableError{Err: fmt.Errorf("server returned %s", resp.Status)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("server returned %s: %s", resp.Status, bytes.TrimSpace(msg))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
