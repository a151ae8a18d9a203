package mcpserver

import (
	"github.com/andreiashu/geosearch"
	"github.com/mark3labs/mcp-go/mcp"
)

func limitProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Maximum number of results to return (1-100)",
		"default":     10,
		"minimum":     1,
		"maximum":     geosearch.MaxResults,
	}
}

// searchCitiesTool returns the tool definition for search_cities
func searchCitiesTool() mcp.Tool {
	return mcp.Tool{
		Name: "search_cities",
		Description: "Search the city catalog by name, region or country name. Every word must " +
			"appear (as a substring) in the city's text; results are ordered by population.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search text, e.g. \"london\" or \"santa cruz bolivia\". Empty returns the largest cities.",
				},
				"limit": limitProperty(),
			},
		},
	}
}

// searchCountryCitiesTool returns the tool definition for search_country_cities
func searchCountryCitiesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_country_cities",
		Description: "Search cities within one country, ordered by population",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"country_code": map[string]interface{}{
					"type":        "string",
					"description": "ISO 3166-1 alpha-2 country code in upper case, e.g. \"GB\"",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search text; empty lists the country's largest cities",
				},
				"limit": limitProperty(),
			},
			Required: []string{"country_code"},
		},
	}
}

// lookupCityTool returns the tool definition for lookup_city
func lookupCityTool() mcp.Tool {
	return mcp.Tool{
		Name:        "lookup_city",
		Description: "Fetch one city by its catalog id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "City id as returned by the search tools",
				},
			},
			Required: []string{"id"},
		},
	}
}
