package repository

import (
	"context"

	"github.com/cWebCo/tensile-payment-2/internal/domain/entities"
	"github.com/cWebCo/tensile-payment-2/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultSettingsTableName = "gateway_settings"
	defaultGatewayID         = "woocommerce_tensile_payments"
)

type gatewaySettingsItem struct {
	GatewayID    string `dynamodbav:"gateway_id"`
	Enabled      bool   `dynamodbav:"enabled"`
	Title        string `dynamodbav:"title"`
	Description  string `dynamodbav:"description"`
	Instructions string `dynamodbav:"instructions"`
	TestMode     bool   `dynamodbav:"testmode"`

	APIEndpoint    string `dynamodbav:"api_endpoint"`
	CheckoutAppURL string `dynamodbav:"checkout_app_url"`
	ClientID       string `dynamodbav:"client_id"`
	ClientSecret   string `dynamodbav:"client_secret"`

	SandboxAPIEndpoint    string `dynamodbav:"sandbox_api_endpoint"`
	SandboxCheckoutAppURL string `dynamodbav:"sandbox_checkout_app_url"`
	SandboxClientID       string `dynamodbav:"sandbox_client_id"`
	SandboxClientSecret   string `dynamodbav:"sandbox_client_secret"`
}

// GatewaySettingsDynamoRepository reads the settings item the host's admin
// form writes. One item per gateway id; read on every operation so saved
// changes apply to the next call without a restart.
//
// Table requirements:
//   - PK: gateway_id (string)

type GatewaySettingsDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
	gatewayID string
}

var _ interfaces.IGatewaySettingsStore = (*GatewaySettingsDynamoRepository)(nil)

func NewGatewaySettingsDynamoRepository(ddb *dynamodb.Client) *GatewaySettingsDynamoRepository {
	return &GatewaySettingsDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("GATEWAY_SETTINGS_TABLE", defaultSettingsTableName),
		gatewayID: getenvDefault("GATEWAY_ID", defaultGatewayID),
	}
}

func (r *GatewaySettingsDynamoRepository) Load(ctx context.Context) (entities.GatewaySettings, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"gateway_id": &types.AttributeValueMemberS{Value: r.gatewayID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.GatewaySettings{}, err
	}
	if len(out.Item) == 0 {
		// Missing item behaves like an unconfigured gateway; the resolver
		// rejects the empty credential set before any provider call.
		return entities.GatewaySettings{}, nil
	}

	var it gatewaySettingsItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.GatewaySettings{}, err
	}
	return entities.GatewaySettings{
		Enabled:             it.Enabled,
		Title:               it.Title,
		Description:         it.Description,
		Instructions:        it.Instructions,
		TestMode:            it.TestMode,
		LiveEndpoint:        it.APIEndpoint,
		LiveCheckoutURL:     it.CheckoutAppURL,
		LiveClientID:        it.ClientID,
		LiveClientSecret:    it.ClientSecret,
		SandboxEndpoint:     it.SandboxAPIEndpoint,
		SandboxCheckoutURL:  it.SandboxCheckoutAppURL,
		SandboxClientID:     it.SandboxClientID,
		SandboxClientSecret: it.SandboxClientSecret,
	}, nil
}
