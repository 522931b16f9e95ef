package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	shindan "github.com/wrenchworks-ai/shindan"
)

func (s *Server) registerTools() {
	// shindan_diagnose — one-shot diagnosis from whatever is known right now.
	s.mcpServer.AddTool(
		mcplib.NewTool("shindan_diagnose",
			mcplib.WithDescription(`Run a one-shot vehicle diagnosis from sensor readings, trouble codes, and symptom descriptions.

WHEN TO USE: When you have a batch of vehicle data and want an immediate
ranked diagnosis. For step-by-step investigation where you can run tests
between observations, use shindan_start_session instead.

WHAT YOU GET BACK:
- phase: INITIAL (no usable evidence), INVESTIGATING, or CONFIDENT
- diagnosis: the leading failure mode with confidence and description
- alternatives: other hypotheses still carrying probability
- next_test: the most informative test to run when not yet confident
- recommended_actions: repair steps when confident

EXAMPLE: sensors={"coolant_temp": 118}, dtcs="P0217", symptoms="engine overheating"`),
			mcplib.WithReadOnlyHintAnnotation(true),
			mcplib.WithIdempotentHintAnnotation(true),
			mcplib.WithOpenWorldHintAnnotation(false),
			mcplib.WithString("sensors",
				mcplib.Description(`Sensor readings as a JSON object of name to numeric value, e.g. {"coolant_temp": 118, "stft": 15}. Names are matched case-insensitively with common aliases (ect, stft, ltft).`),
			),
			mcplib.WithString("dtcs",
				mcplib.Description("Diagnostic trouble codes, comma-separated, e.g. \"P0171,P0300\""),
			),
			mcplib.WithString("symptoms",
				mcplib.Description("Free-text symptom descriptions, semicolon-separated, e.g. \"rough idle; check engine light\""),
			),
		),
		s.handleDiagnose,
	)

	// shindan_start_session — open a multi-turn diagnostic session.
	s.mcpServer.AddTool(
		mcplib.NewTool("shindan_start_session",
			mcplib.WithDescription(`Start a multi-turn diagnostic session for a vehicle.

WHEN TO USE: When you can gather evidence incrementally — report symptoms,
get a recommended test, run it, report the result, repeat. The session
keeps a belief state that sharpens with every observation and concludes
automatically once one failure mode is confident enough.

Returns the session id (pass it to shindan_observe, shindan_recommend_test,
shindan_conclude, shindan_explain), the current hypothesis ranking, and the
first recommended test.`),
			mcplib.WithDestructiveHintAnnotation(false),
			mcplib.WithIdempotentHintAnnotation(false),
			mcplib.WithOpenWorldHintAnnotation(false),
			mcplib.WithString("vehicle_make", mcplib.Description("Vehicle make, e.g. \"Honda\"")),
			mcplib.WithString("vehicle_model", mcplib.Description("Vehicle model, e.g. \"Civic\"")),
			mcplib.WithNumber("vehicle_year", mcplib.Description("Model year")),
			mcplib.WithString("vin", mcplib.Description("Vehicle identification number")),
			mcplib.WithString("symptoms",
				mcplib.Description("Initial symptom descriptions, semicolon-separated"),
			),
			mcplib.WithString("sensors",
				mcplib.Description(`Initial sensor readings as a JSON object of name to numeric value`),
			),
		),
		s.handleStartSession,
	)

	// shindan_observe — record one piece of evidence on a session.
	s.mcpServer.AddTool(
		mcplib.NewTool("shindan_observe",
			mcplib.WithDescription(`Record one observation on a diagnostic session.

Provide EXACTLY ONE of:
- evidence_type: a known evidence token (usually from a recommended test),
  with observed=true/false for whether the finding was present or absent
- dtc: a diagnostic trouble code read from the vehicle
- symptom: a free-text symptom description

Absence is evidence too: reporting observed=false for a recommended test
rules hypotheses out and is often as informative as a positive finding.
The session concludes automatically when one failure mode becomes
confident enough.`),
			mcplib.WithDestructiveHintAnnotation(false),
			mcplib.WithIdempotentHintAnnotation(false),
			mcplib.WithOpenWorldHintAnnotation(false),
			mcplib.WithString("session_id", mcplib.Description("Session id from shindan_start_session"), mcplib.Required()),
			mcplib.WithString("evidence_type", mcplib.Description("Evidence token to record, e.g. \"fan_not_running_when_hot\"")),
			mcplib.WithBoolean("observed", mcplib.Description("Whether the evidence was present (default true). Only applies with evidence_type.")),
			mcplib.WithString("notes", mcplib.Description("Free-form notes attached to the observation")),
			mcplib.WithString("dtc", mcplib.Description("Trouble code to record, e.g. \"P0480\"")),
			mcplib.WithString("symptom", mcplib.Description("Symptom description to record")),
		),
		s.handleObserve,
	)

	// shindan_rule_out — eliminate a hypothesis.
	s.mcpServer.AddTool(
		mcplib.NewTool("shindan_rule_out",
			mcplib.WithDescription(`Eliminate a failure mode from a session after it has been physically verified as not the cause (part replaced, bench-tested good, visually confirmed intact). The hypothesis is zeroed for the rest of the session.`),
			mcplib.WithDestructiveHintAnnotation(false),
			mcplib.WithIdempotentHintAnnotation(true),
			mcplib.WithOpenWorldHintAnnotation(false),
			mcplib.WithString("session_id", mcplib.Description("Session id"), mcplib.Required()),
			mcplib.WithString("failure_id", mcplib.Description("Failure mode to eliminate, e.g. \"thermostat_stuck_open\""), mcplib.Required()),
		),
		s.handleRuleOut,
	)

	// shindan_recommend_test — next most informative test.
	s.mcpServer.AddTool(
		mcplib.NewTool("shindan_recommend_test",
			mcplib.WithDescription(`Get the next most informative test for a session, chosen by expected information gain over the current hypothesis ranking. Returns null when the session has concluded or no single test would meaningfully discriminate the remaining hypotheses.`),
			mcplib.WithReadOnlyHintAnnotation(true),
			mcplib.WithIdempotentHintAnnotation(true),
			mcplib.WithOpenWorldHintAnnotation(false),
			mcplib.WithString("session_id", mcplib.Description("Session id"), mcplib.Required()),
		),
		s.handleRecommendTest,
	)

	// shindan_conclude — finish a session.
	s.mcpServer.AddTool(
		mcplib.NewTool("shindan_conclude",
			mcplib.WithDescription(`Conclude a diagnostic session. If the session has not concluded on its own, the current best hypothesis is returned as a provisional (forced) conclusion. Includes supporting evidence, remaining alternatives, recommended repair actions, and a formatted report.`),
			mcplib.WithDestructiveHintAnnotation(false),
			mcplib.WithIdempotentHintAnnotation(true),
			mcplib.WithOpenWorldHintAnnotation(false),
			mcplib.WithString("session_id", mcplib.Description("Session id"), mcplib.Required()),
		),
		s.handleConclude,
	)

	// shindan_explain — human-readable reasoning trail.
	s.mcpServer.AddTool(
		mcplib.NewTool("shindan_explain",
			mcplib.WithDescription(`Render a session's reasoning trail as human-readable text: reported symptoms, every observation with its direction, the current belief distribution as a bar chart, and the certainty level. Useful for showing a customer or technician why the engine believes what it believes.`),
			mcplib.WithReadOnlyHintAnnotation(true),
			mcplib.WithIdempotentHintAnnotation(true),
			mcplib.WithOpenWorldHintAnnotation(false),
			mcplib.WithString("session_id", mcplib.Description("Session id"), mcplib.Required()),
		),
		s.handleExplain,
	)
}

func (s *Server) handleDiagnose(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	sensors, err := parseSensors(request.GetString("sensors", ""))
	if err != nil {
		return errorResult(fmt.Sprintf("invalid sensors: %v", err)), nil
	}

	input := shindan.Input{
		Sensors:  sensors,
		DTCs:     splitList(request.GetString("dtcs", "")),
		Symptoms: splitList(request.GetString("symptoms", "")),
	}

	return jsonResult(s.engine.Diagnose(input)), nil
}

func (s *Server) handleStartSession(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	sensors, err := parseSensors(request.GetString("sensors", ""))
	if err != nil {
		return errorResult(fmt.Sprintf("invalid sensors: %v", err)), nil
	}

	vehicle := shindan.VehicleInfo{
		Make:  request.GetString("vehicle_make", ""),
		Model: request.GetString("vehicle_model", ""),
		Year:  request.GetInt("vehicle_year", 0),
		VIN:   request.GetString("vin", ""),
	}

	sess := s.engine.StartSession(vehicle, splitList(request.GetString("symptoms", "")), sensors)
	s.register(sess)
	s.logger.Info("mcp session started", "session", sess.ID())

	return jsonResult(map[string]any{
		"session":        s.engine.Snapshot(sess),
		"recommendation": s.engine.RecommendTest(sess),
	}), nil
}

func (s *Server) handleObserve(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	sess, ok := s.session(request.GetString("session_id", ""))
	if !ok {
		return errorResult("session not found"), nil
	}

	evidenceType := request.GetString("evidence_type", "")
	dtc := request.GetString("dtc", "")
	symptom := request.GetString("symptom", "")

	set := 0
	for _, v := range []string{evidenceType, dtc, symptom} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return errorResult("exactly one of evidence_type, dtc, or symptom is required"), nil
	}

	switch {
	case evidenceType != "":
		s.engine.Observe(sess, evidenceType, request.GetBool("observed", true), request.GetString("notes", ""))
	case dtc != "":
		if !s.engine.ObserveDTC(sess, dtc) {
			return errorResult("unrecognized DTC " + dtc), nil
		}
	default:
		if !s.engine.ObserveSymptom(sess, symptom) {
			return errorResult("symptom matched no known pattern"), nil
		}
	}

	return jsonResult(map[string]any{
		"session":        s.engine.Snapshot(sess),
		"recommendation": s.engine.RecommendTest(sess),
	}), nil
}

func (s *Server) handleRuleOut(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	sess, ok := s.session(request.GetString("session_id", ""))
	if !ok {
		return errorResult("session not found"), nil
	}
	failureID := request.GetString("failure_id", "")
	if failureID == "" {
		return errorResult("failure_id is required"), nil
	}

	s.engine.RuleOut(sess, failureID)
	return jsonResult(s.engine.Snapshot(sess)), nil
}

func (s *Server) handleRecommendTest(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	sess, ok := s.session(request.GetString("session_id", ""))
	if !ok {
		return errorResult("session not found"), nil
	}
	return jsonResult(map[string]any{
		"recommendation": s.engine.RecommendTest(sess),
	}), nil
}

func (s *Server) handleConclude(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	sess, ok := s.session(request.GetString("session_id", ""))
	if !ok {
		return errorResult("session not found"), nil
	}
	return jsonResult(s.engine.Conclude(sess)), nil
}

func (s *Server) handleExplain(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	sess, ok := s.session(request.GetString("session_id", ""))
	if !ok {
		return errorResult("session not found"), nil
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{
			mcplib.TextContent{Type: "text", Text: s.engine.Explain(sess)},
		},
	}, nil
}

// parseSensors decodes a JSON object of sensor name to numeric value.
func parseSensors(raw string) ([]shindan.SensorReading, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var m map[string]float64
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]shindan.SensorReading, 0, len(m))
	for _, name := range names {
		out = append(out, shindan.SensorReading{Name: name, Value: m[name]})
	}
	return out, nil
}

// splitList splits on commas and semicolons, trimming whitespace and dropping
// empty entries.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
