package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/queries/list_events"
)

type eventView struct {
	EventID     string `json:"event_id" yaml:"event_id"`
	EventType   string `json:"event_type" yaml:"event_type"`
	AggregateID string `json:"aggregate_id" yaml:"aggregate_id"`
	Status      string `json:"status" yaml:"status"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
	ProcessedAt string `json:"processed_at,omitempty" yaml:"processed_at,omitempty"`
	Payload     string `json:"payload" yaml:"payload"`
}

func newEventsCommand(c *cli) *cobra.Command {
	events := &cobra.Command{Use: "events", Short: "Inspect outbox events"}

	var (
		eventType, aggregateID, status string
		limit                          int64
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List the newest outbox events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := &list_events.Request{Limit: limit}
			if eventType != "" {
				req.EventType = &eventType
			}
			if aggregateID != "" {
				req.AggregateID = &aggregateID
			}
			if status != "" {
				req.Status = &status
			}

			opts, err := c.services(cmd)
			if err != nil {
				return err
			}
			rows, err := opts.ListEvents.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}

			views := make([]eventView, 0, len(rows))
			for _, e := range rows {
				v := eventView{
					EventID:     e.EventID,
					EventType:   e.EventType,
					AggregateID: e.AggregateID,
					Status:      e.Status,
					CreatedAt:   e.CreatedAt.Format(time.RFC3339),
					Payload:     e.PayloadString(),
				}
				if e.ProcessedAt.Valid {
					v.ProcessedAt = e.ProcessedAt.Time.Format(time.RFC3339)
				}
				views = append(views, v)
			}
			return c.print(cmd.OutOrStdout(), views)
		},
	}
	list.Flags().StringVar(&eventType, "event-type", "", "filter by event type, e.g. allocation_token.redeemed")
	list.Flags().StringVar(&aggregateID, "aggregate-id", "", "filter by aggregate id")
	list.Flags().StringVar(&status, "status", "", "filter by status (pending, processing, completed, failed)")
	list.Flags().Int64Var(&limit, "limit", 100, "maximum number of events")

	events.AddCommand(list)
	return events
}
