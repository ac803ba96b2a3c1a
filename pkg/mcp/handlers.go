package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"
	"github.com/tmarsden/feedbox/pkg/feeder"
	"github.com/tmarsden/feedbox/pkg/lamps"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	feederStatus := "unconfigured"
	if s.guard.IsConfigured() {
		feederStatus = "configured"
	}
	bridgeStatus := "unconfigured"
	if s.bridge != nil {
		bridgeStatus = "configured"
	}

	status := "healthy"
	if feederStatus != "configured" {
		status = "degraded"
	}

	out := GetHealthOutput{
		Status:    status,
		Feeder:    feederStatus,
		Bridge:    bridgeStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleFeedNow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	err := s.guard.WithSession(ctx, func(client feeder.Client) error {
		return client.Set(ctx, feeder.DPManualFeed, feeder.ManualFeedPortions)
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to dispense feed: %s", err)), nil
	}

	// The feed already happened; a logging failure must not fail the call.
	if s.events != nil {
		if err := s.events.Record(ctx, "mcp", feeder.ManualFeedPortions); err != nil {
			log.Warn().Err(err).Msg("Failed to record feed event")
		}
	}

	out := FeedNowOutput{
		Success: true,
		Message: "Feed dispensed",
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetFeedHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var raw any
	err := s.guard.WithSession(ctx, func(client feeder.Client) error {
		var err error
		raw, err = client.Get(ctx, feeder.DPFeedHistory)
		return err
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read feed history: %s", err)), nil
	}

	decoded := feeder.DecodeHistory(raw)

	var history any = decoded
	if decoded.IsRaw() {
		history = decoded.Raw
	}

	out := GetFeedHistoryOutput{
		Success:     true,
		FeedHistory: history,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleScanDataPoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	available := make(map[string]any)
	err := s.guard.WithSession(ctx, func(client feeder.Client) error {
		for _, dp := range feeder.ScanDPs {
			value, err := client.Get(ctx, dp)
			if err != nil {
				continue
			}
			available[strconv.Itoa(dp)] = value
		}
		return nil
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to scan data points: %s", err)), nil
	}

	out := ScanDataPointsOutput{
		Success:      true,
		AvailableDPs: available,
		TotalFound:   len(available),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListLamps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.bridge == nil {
		return mcp.NewToolResultError("no lamp bridge is configured"), nil
	}

	result, err := s.bridge.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list lamps: %s", err)), nil
	}

	infos := make([]LampInfo, 0, len(result))
	for i := range result {
		infos = append(infos, LampToInfo(&result[i]))
	}

	out := ListLampsOutput{
		Lamps: infos,
		Count: len(infos),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetLamp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.bridge == nil {
		return mcp.NewToolResultError("no lamp bridge is configured"), nil
	}

	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	lamp, err := s.bridge.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lamp not found: %s", err)), nil
	}

	out := GetLampOutput{Lamp: LampToInfo(lamp)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSetLampState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.bridge == nil {
		return mcp.NewToolResultError("no lamp bridge is configured"), nil
	}

	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()

	// The state can arrive as a nested "state" object or as flat args.
	stateMap := map[string]any{}
	if stateRaw, ok := args["state"]; ok {
		if sm, ok := stateRaw.(map[string]any); ok {
			stateMap = sm
		}
	} else {
		for k, v := range args {
			if k != "id" {
				stateMap[k] = v
			}
		}
	}

	if s.validator != nil {
		if err := s.validator.Validate(lamps.StateSchema, stateMap); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("validation error: %s", err)), nil
		}
	}

	return s.applyLampState(ctx, id, stateMap)
}

func (s *Server) handleTurnOnLamp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.bridge == nil {
		return mcp.NewToolResultError("no lamp bridge is configured"), nil
	}

	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state := map[string]any{"on": true}
	if b, ok := request.GetArguments()["brightness"]; ok {
		if bf, ok := b.(float64); ok {
			state["bri"] = bf
		}
	}

	return s.applyLampState(ctx, id, state)
}

func (s *Server) handleTurnOffLamp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.bridge == nil {
		return mcp.NewToolResultError("no lamp bridge is configured"), nil
	}

	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.applyLampState(ctx, id, map[string]any{"on": false})
}

// applyLampState writes a state to the bridge and reads the lamp back so
// the caller sees the applied state.
func (s *Server) applyLampState(ctx context.Context, id string, state map[string]any) (*mcp.CallToolResult, error) {
	if err := s.bridge.SetState(ctx, id, state); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set lamp state: %s", err)), nil
	}

	lamp, err := s.bridge.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read lamp back: %s", err)), nil
	}

	out := SetLampStateOutput{
		LampID: id,
		State:  lamp.State,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- helpers ---

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
