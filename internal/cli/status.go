// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
)

// handleHealth probes the backend and reports reachability. No credential
// is required; the probe hits the unauthenticated health endpoint.
func (c *CLI) handleHealth(ctx context.Context, args *ArgParser) error {
	hs, err := c.Client.Health(ctx)

	healthy := err == nil && hs != nil
	status := "unknown"
	if hs != nil {
		status = hs.Status
	}

	if args.BoolFlag("json") {
		out := map[string]any{
			"backend": c.Client.BaseURL(),
			"healthy": healthy,
			"status":  status,
		}
		if err != nil {
			out["error"] = err.Error()
		}
		printJSON(c.out(), out)
		if err != nil {
			return err
		}
		return nil
	}

	fmt.Fprintf(c.out(), "Backend: %s\n", c.Client.BaseURL())
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	if hs == nil {
		fmt.Fprintln(c.out(), "Status:  probe suppressed, try again shortly")
		return nil
	}
	fmt.Fprintf(c.out(), "Status:  %s\n", status)
	return nil
}
