package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andreiashu/geosearch"
	"github.com/mark3labs/mcp-go/mcp"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeCityNotFound  = -32001 // No city with the requested id
)

const defaultLimit = 10

// cityResult is the JSON shape of one city in tool results.
type cityResult struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	DisplayName         string  `json:"display_name"`
	CountryCode         string  `json:"country_code"`
	Region              string  `json:"region,omitempty"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	Population          *int64  `json:"population,omitempty"`
	FormattedPopulation string  `json:"formatted_population,omitempty"`
}

func newCityResult(c geosearch.City) cityResult {
	r := cityResult{
		ID:                  c.ID,
		Name:                c.Name,
		DisplayName:         c.DisplayName(),
		CountryCode:         c.CountryCode,
		Region:              c.Region,
		Latitude:            c.Coordinate.Latitude,
		Longitude:           c.Coordinate.Longitude,
		FormattedPopulation: c.FormattedPopulation(),
	}
	if pop, ok := c.Population(); ok {
		r.Population = &pop
	}
	return r
}

// searchResult is the body returned by both search tools.
type searchResult struct {
	Query       string       `json:"query"`
	CountryCode string       `json:"country_code,omitempty"`
	Count       int          `json:"count"`
	Cities      []cityResult `json:"cities"`
}

// handleSearchCities handles the search_cities tool invocation
func (s *Server) handleSearchCities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query := getStringDefault(args, "query", "")
	limit, err := parseLimit(args)
	if err != nil {
		return nil, err
	}

	cities := s.engine.SearchGlobal(query)
	s.logger.Debug().Str("query", query).Int("results", len(cities)).Msg("search_cities")

	return searchToolResult(query, "", cities, limit)
}

// handleSearchCountryCities handles the search_country_cities tool invocation
func (s *Server) handleSearchCountryCities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	code, ok := args["country_code"].(string)
	if !ok || code == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "country_code parameter is required", map[string]interface{}{
			"param":  "country_code",
			"reason": "missing or empty",
		})
	}
	query := getStringDefault(args, "query", "")
	limit, err := parseLimit(args)
	if err != nil {
		return nil, err
	}

	cities := s.engine.SearchInCountry(code, query)
	s.logger.Debug().Str("country", code).Str("query", query).Int("results", len(cities)).Msg("search_country_cities")

	return searchToolResult(query, code, cities, limit)
}

// handleLookupCity handles the lookup_city tool invocation
func (s *Server) handleLookupCity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "id parameter is required", map[string]interface{}{
			"param":  "id",
			"reason": "missing or empty",
		})
	}

	city, found := s.engine.LookupCity(id)
	if !found {
		return nil, newMCPError(ErrorCodeCityNotFound, "city not found", map[string]interface{}{
			"id": id,
		})
	}
	return jsonResult(newCityResult(city))
}

func searchToolResult(query, code string, cities []geosearch.City, limit int) (*mcp.CallToolResult, error) {
	if len(cities) > limit {
		cities = cities[:limit]
	}
	results := make([]cityResult, len(cities))
	for i, c := range cities {
		results[i] = newCityResult(c)
	}
	return jsonResult(searchResult{
		Query:       query,
		CountryCode: code,
		Count:       len(results),
		Cities:      results,
	})
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to encode result", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return mcp.NewToolResultText(string(b)), nil
}

// parseLimit reads the optional limit argument, rejecting values outside
// 1..geosearch.MaxResults.
func parseLimit(args map[string]interface{}) (int, error) {
	limit := getIntDefault(args, "limit", defaultLimit)
	if limit < 1 || limit > geosearch.MaxResults {
		return 0, newMCPError(ErrorCodeInvalidParams, fmt.Sprintf("limit must be between 1 and %d", geosearch.MaxResults), map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}
	return limit, nil
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return defaultValue
	}
}

func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return defaultValue
}
