package explorer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/smithy-go"

	"github.com/costview/costview-go/internal/types"
)

const (
	costMetric = "UnblendedCost"
	dateLayout = "2006-01-02"
)

// CostExplorerAPI is the subset of the Cost Explorer client the wrapper calls.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
	ListCostCategoryDefinitions(ctx context.Context, params *costexplorer.ListCostCategoryDefinitionsInput, optFns ...func(*costexplorer.Options)) (*costexplorer.ListCostCategoryDefinitionsOutput, error)
}

// Client issues the three billing query shapes and converts the untyped API
// response into typed records at the boundary. Errors are classified into the
// taxonomy once here; callers only see sentinel-matchable errors.
type Client struct {
	api CostExplorerAPI
}

// New builds a Client on the SDK default credential chain. An explicit region
// overrides whatever the chain resolved.
func New(ctx context.Context, region string) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, &types.QueryError{Op: "load aws config", Kind: types.ErrCredentials, Err: err}
	}
	if region != "" {
		cfg.Region = region
	}
	return &Client{api: costexplorer.NewFromConfig(cfg)}, nil
}

// NewWithAPI wires an existing API implementation, used by tests.
func NewWithAPI(api CostExplorerAPI) *Client {
	return &Client{api: api}
}

// Ping issues a cheap call so credential problems surface before the first
// real query.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.ListCostCategoryDefinitions(ctx, &costexplorer.ListCostCategoryDefinitionsInput{
		MaxResults: aws.Int32(1),
	})
	if err != nil {
		return classify("verify credentials", err)
	}
	return nil
}

// DailyCosts returns one record per calendar day the API reports in
// [start, end). End is exclusive, matching the Cost Explorer date interval.
func (c *Client) DailyCosts(ctx context.Context, start, end time.Time) ([]types.DailyCost, error) {
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod:  interval(start, end),
		Granularity: cetypes.GranularityDaily,
		Metrics:     []string{costMetric},
	}

	var costs []types.DailyCost
	for {
		out, err := c.api.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, classify("fetch daily costs", err)
		}
		for _, result := range out.ResultsByTime {
			day, err := parsePeriodStart(result.TimePeriod)
			if err != nil {
				return nil, err
			}
			amount, err := metricAmount(result.Total)
			if err != nil {
				return nil, err
			}
			costs = append(costs, types.DailyCost{Date: day, Amount: amount})
		}
		if out.NextPageToken == nil {
			return costs, nil
		}
		input.NextPageToken = out.NextPageToken
	}
}

// MonthlyTotal sums the cost for [start, end) at monthly granularity.
func (c *Client) MonthlyTotal(ctx context.Context, start, end time.Time) (float64, error) {
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod:  interval(start, end),
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{costMetric},
	}

	var total float64
	for {
		out, err := c.api.GetCostAndUsage(ctx, input)
		if err != nil {
			return 0, classify("fetch monthly total", err)
		}
		for _, result := range out.ResultsByTime {
			amount, err := metricAmount(result.Total)
			if err != nil {
				return 0, err
			}
			total += amount
		}
		if out.NextPageToken == nil {
			return total, nil
		}
		input.NextPageToken = out.NextPageToken
	}
}

// CostsByService returns the per-service spend for [start, end), grouped by
// the SERVICE dimension. Amounts for the same service across result periods
// are summed; order is unspecified.
func (c *Client) CostsByService(ctx context.Context, start, end time.Time) ([]types.ServiceCost, error) {
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod:  interval(start, end),
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{costMetric},
		GroupBy: []cetypes.GroupDefinition{
			{
				Type: cetypes.GroupDefinitionTypeDimension,
				Key:  aws.String("SERVICE"),
			},
		},
	}

	byService := make(map[string]float64)
	var order []string
	for {
		out, err := c.api.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, classify("fetch service breakdown", err)
		}
		for _, result := range out.ResultsByTime {
			for _, group := range result.Groups {
				if len(group.Keys) == 0 {
					continue
				}
				name := group.Keys[0]
				amount, err := metricAmount(group.Metrics)
				if err != nil {
					return nil, err
				}
				if _, seen := byService[name]; !seen {
					order = append(order, name)
				}
				byService[name] += amount
			}
		}
		if out.NextPageToken == nil {
			break
		}
		input.NextPageToken = out.NextPageToken
	}

	costs := make([]types.ServiceCost, 0, len(order))
	for _, name := range order {
		costs = append(costs, types.ServiceCost{Service: name, Amount: byService[name]})
	}
	return costs, nil
}

func interval(start, end time.Time) *cetypes.DateInterval {
	return &cetypes.DateInterval{
		Start: aws.String(start.Format(dateLayout)),
		End:   aws.String(end.Format(dateLayout)),
	}
}

func parsePeriodStart(period *cetypes.DateInterval) (time.Time, error) {
	if period == nil || period.Start == nil {
		return time.Time{}, &types.QueryError{
			Op:   "parse response",
			Kind: types.ErrRemoteService,
			Err:  errors.New("result period missing start date"),
		}
	}
	day, err := time.Parse(dateLayout, *period.Start)
	if err != nil {
		return time.Time{}, &types.QueryError{Op: "parse response", Kind: types.ErrRemoteService, Err: err}
	}
	return day, nil
}

func metricAmount(metrics map[string]cetypes.MetricValue) (float64, error) {
	value, ok := metrics[costMetric]
	if !ok || value.Amount == nil {
		return 0, &types.QueryError{
			Op:   "parse response",
			Kind: types.ErrRemoteService,
			Err:  fmt.Errorf("result missing %s metric", costMetric),
		}
	}
	amount, err := strconv.ParseFloat(*value.Amount, 64)
	if err != nil {
		return 0, &types.QueryError{Op: "parse response", Kind: types.ErrRemoteService, Err: err}
	}
	return amount, nil
}

// classify maps an AWS error onto the taxonomy. Cost Explorer reports a
// disabled service as an AccessDeniedException whose message mentions
// enabling, so that case is split off from plain permission errors.
func classify(op string, err error) error {
	kind := types.ErrRemoteService

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDeniedException":
			if strings.Contains(strings.ToLower(apiErr.ErrorMessage()), "enabl") {
				kind = types.ErrServiceDisabled
			} else {
				kind = types.ErrPermissionDenied
			}
		case "UnrecognizedClientException", "InvalidClientTokenId", "ExpiredTokenException", "SignatureDoesNotMatch":
			kind = types.ErrCredentials
		case "DataUnavailableException":
			kind = types.ErrDataUnavailable
		}
	}

	return &types.QueryError{Op: op, Kind: kind, Err: err}
}
