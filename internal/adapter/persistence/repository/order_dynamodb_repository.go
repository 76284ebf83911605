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

const defaultOrdersTableName = "orders"

type orderLineItem struct {
	Name           string `dynamodbav:"name"`
	Quantity       int    `dynamodbav:"quantity"`
	LineTotalMinor int64  `dynamodbav:"line_total_minor"`
}

type orderShippingItem struct {
	Line1    string `dynamodbav:"line1"`
	City     string `dynamodbav:"city"`
	State    string `dynamodbav:"state"`
	Country  string `dynamodbav:"country"`
	Postcode string `dynamodbav:"postcode"`
}

type orderBillingItem struct {
	FirstName string `dynamodbav:"first_name"`
	LastName  string `dynamodbav:"last_name"`
	Email     string `dynamodbav:"email"`
	Phone     string `dynamodbav:"phone"`
}

type orderItem struct {
	ID            string             `dynamodbav:"id"`
	SubtotalMinor int64              `dynamodbav:"subtotal_minor"`
	TotalMinor    int64              `dynamodbav:"total_minor"`
	TaxMinor      int64              `dynamodbav:"tax_minor"`
	Currency      string             `dynamodbav:"currency"`
	LineItems     []orderLineItem    `dynamodbav:"line_items"`
	Shipping      *orderShippingItem `dynamodbav:"shipping,omitempty"`
	Billing       orderBillingItem   `dynamodbav:"billing"`
}

// OrderDynamoRepository reads order snapshots from the host-owned orders
// table. Read-only: order state transitions belong to the host.
//
// Table requirements:
//   - PK: id (string)

type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.OrderSnapshot, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.OrderSnapshot{}, err
	}
	if len(out.Item) == 0 {
		return entities.OrderSnapshot{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.OrderSnapshot{}, err
	}
	return fromOrderItem(it), nil
}

func fromOrderItem(it orderItem) entities.OrderSnapshot {
	lines := make([]entities.OrderLine, 0, len(it.LineItems))
	for _, li := range it.LineItems {
		lines = append(lines, entities.OrderLine{
			Name:           li.Name,
			Quantity:       li.Quantity,
			LineTotalMinor: li.LineTotalMinor,
		})
	}

	o := entities.OrderSnapshot{
		ID:            it.ID,
		SubtotalMinor: it.SubtotalMinor,
		TotalMinor:    it.TotalMinor,
		TaxMinor:      it.TaxMinor,
		Currency:      it.Currency,
		LineItems:     lines,
		Billing: entities.OrderBilling{
			FirstName: it.Billing.FirstName,
			LastName:  it.Billing.LastName,
			Email:     it.Billing.Email,
			Phone:     it.Billing.Phone,
		},
	}
	if it.Shipping != nil {
		o.Shipping = &entities.OrderShipping{
			Line1:    it.Shipping.Line1,
			City:     it.Shipping.City,
			State:    it.Shipping.State,
			Country:  it.Shipping.Country,
			Postcode: it.Shipping.Postcode,
		}
	}
	return o
}
