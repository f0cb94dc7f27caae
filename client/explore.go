package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ExploreService handles neighborhood exploration operations.
type ExploreService struct {
	c *Client
}

// Neighborhood explores the graph around a focus node.
func (s *ExploreService) Neighborhood(ctx context.Context, id string, opts *ExploreOptions) (*GraphView, error) {
	var resp GraphView
	if err := s.c.get(ctx, "/api/v1/explore/"+url.PathEscape(id), exploreParams(opts), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Cost previews the estimated cost of an exploration without executing it or
// consuming budget.
func (s *ExploreService) Cost(ctx context.Context, id string, opts *ExploreOptions) (*QueryCost, error) {
	var resp QueryCost
	if err := s.c.get(ctx, "/api/v1/explore/"+url.PathEscape(id)+"/cost", exploreParams(opts), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// exploreParams builds query parameters from ExploreOptions.
func exploreParams(opts *ExploreOptions) url.Values {
	params := url.Values{}
	if opts == nil {
		return params
	}
	if opts.DepthSet || opts.Depth > 0 {
		params.Set("depth", strconv.Itoa(opts.Depth))
	}
	if opts.MaxNodes > 0 {
		params.Set("max_nodes", strconv.Itoa(opts.MaxNodes))
	}
	if len(opts.Types) > 0 {
		params.Set("types", strings.Join(opts.Types, ","))
	}
	return params
}

// PathService handles pathfinding operations.
type PathService struct {
	c *Client
}

// Find locates a path between two nodes.
func (s *PathService) Find(ctx context.Context, fromID, toID string, opts *PathOptions) (*PathResult, error) {
	path := fmt.Sprintf("/api/v1/path/%s/%s", url.PathEscape(fromID), url.PathEscape(toID))

	params := url.Values{}
	if opts != nil {
		if opts.Algorithm != "" {
			params.Set("algorithm", opts.Algorithm)
		}
		if opts.MaxHops > 0 {
			params.Set("max_hops", strconv.Itoa(opts.MaxHops))
		}
		if len(opts.Prefer) > 0 {
			params.Set("prefer", strings.Join(opts.Prefer, ","))
		}
	}

	var resp PathResult
	if err := s.c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
