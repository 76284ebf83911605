package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cWebCo/tensile-payment-2/internal/domain/entities"
	"github.com/cWebCo/tensile-payment-2/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultTransactionsTableName = "payment_transactions"

type transactionItem struct {
	OrderID        string `dynamodbav:"order_id"`
	PaymentID      string `dynamodbav:"payment_id"`
	CheckoutURL    string `dynamodbav:"checkout_url"`
	AmountMinor    int64  `dynamodbav:"amount_minor"`
	Currency       string `dynamodbav:"currency"`
	Environment    string `dynamodbav:"environment"`
	IdempotencyKey string `dynamodbav:"idempotency_key"`
	Status         string `dynamodbav:"status"`
	RefundedMinor  int64  `dynamodbav:"refunded_minor,omitempty"`
	RefundReason   string `dynamodbav:"refund_reason,omitempty"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

// TransactionDynamoRepository persists PaymentTransaction entities.
//
// Table requirements:
//   - PK: order_id (string)
//
// Order id as PK guarantees at most one completed transaction per order;
// the conditional put reports a lost race as a zero-value result, same as
// not-found on reads.

type TransactionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ITransactionRepository = (*TransactionDynamoRepository)(nil)

func NewTransactionDynamoRepository(ddb *dynamodb.Client) *TransactionDynamoRepository {
	return &TransactionDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TRANSACTIONS_TABLE", defaultTransactionsTableName),
	}
}

func (r *TransactionDynamoRepository) Create(ctx context.Context, t entities.PaymentTransaction) (entities.PaymentTransaction, error) {
	it := toTransactionItem(t)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.PaymentTransaction{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#order_id)"),
		ExpressionAttributeNames: map[string]string{
			"#order_id": "order_id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.PaymentTransaction{}, nil
		}
		return entities.PaymentTransaction{}, err
	}
	return t, nil
}

func (r *TransactionDynamoRepository) GetByOrderID(ctx context.Context, orderID string) (entities.PaymentTransaction, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentTransaction{}, nil
	}

	var it transactionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentTransaction{}, err
	}
	return fromTransactionItem(it), nil
}

func (r *TransactionDynamoRepository) MarkRefunded(ctx context.Context, orderID string, amountMinor int64, reason string) (entities.PaymentTransaction, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConditionExpression: aws.String("attribute_exists(#order_id)"),
		UpdateExpression:    aws.String("SET #status = :status, #refunded_minor = :refunded_minor, #refund_reason = :refund_reason, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":         &types.AttributeValueMemberS{Value: string(entities.TransactionStatusRefunded)},
			":refunded_minor": &types.AttributeValueMemberN{Value: strconv.FormatInt(amountMinor, 10)},
			":refund_reason":  &types.AttributeValueMemberS{Value: reason},
			":updated_at":     &types.AttributeValueMemberS{Value: now},
		},
		ExpressionAttributeNames: map[string]string{
			"#order_id":       "order_id",
			"#status":         "status",
			"#refunded_minor": "refunded_minor",
			"#refund_reason":  "refund_reason",
			"#updated_at":     "updated_at",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.PaymentTransaction{}, nil
		}
		return entities.PaymentTransaction{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.PaymentTransaction{}, nil
	}

	var it transactionItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.PaymentTransaction{}, err
	}
	return fromTransactionItem(it), nil
}

func toTransactionItem(t entities.PaymentTransaction) transactionItem {
	return transactionItem{
		OrderID:        t.OrderID,
		PaymentID:      t.PaymentID,
		CheckoutURL:    t.CheckoutURL,
		AmountMinor:    t.AmountMinor,
		Currency:       t.Currency,
		Environment:    t.Environment,
		IdempotencyKey: t.IdempotencyKey,
		Status:         string(t.Status),
		RefundedMinor:  t.RefundedMinor,
		RefundReason:   t.RefundReason,
		CreatedAt:      t.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:      t.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromTransactionItem(it transactionItem) entities.PaymentTransaction {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.PaymentTransaction{
		OrderID:        it.OrderID,
		PaymentID:      it.PaymentID,
		CheckoutURL:    it.CheckoutURL,
		AmountMinor:    it.AmountMinor,
		Currency:       it.Currency,
		Environment:    it.Environment,
		IdempotencyKey: it.IdempotencyKey,
		Status:         entities.TransactionStatus(it.Status),
		RefundedMinor:  it.RefundedMinor,
		RefundReason:   it.RefundReason,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}
