package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pets-mvc/internal/domain/pets"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// API es el subconjunto del cliente que usamos (facilita fakes en tests).
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Collection usa name como partition key: la unicidad sale de la condición
// attribute_not_exists en el PutItem.
type Collection[T pets.Document] struct {
	api   API
	table string
}

func NewCollection[T pets.Document](api API, table string) *Collection[T] {
	return &Collection[T]{api: api, table: table}
}

func (c *Collection[T]) Create(ctx context.Context, doc T) error {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", c.table, err)
	}

	_, err = c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(c.table),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#name)"),
		ExpressionAttributeNames: map[string]string{"#name": "name"},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("%s: %w: %q", c.table, pets.ErrDuplicateName, doc.DocName())
		}
		return fmt.Errorf("%s: put item: %w", c.table, err)
	}
	return nil
}

func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	out := make([]T, 0)

	p := dynamodb.NewScanPaginator(c.api, &dynamodb.ScanInput{TableName: aws.String(c.table)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", c.table, err)
		}
		var batch []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("%s: unmarshal: %w", c.table, err)
		}
		out = append(out, batch...)
	}
	return out, nil
}

func (c *Collection[T]) FindByName(ctx context.Context, name string) (T, error) {
	var doc T
	val, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.table),
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: name},
		},
	})
	if err != nil {
		return doc, fmt.Errorf("%s: get item: %w", c.table, err)
	}
	if val.Item == nil {
		return doc, pets.ErrNotFound
	}

	if err := attributevalue.UnmarshalMap(val.Item, &doc); err != nil {
		return doc, fmt.Errorf("%s: unmarshal: %w", c.table, err)
	}
	return doc, nil
}

// Update reemplaza el item solo si ya existe con el mismo id.
func (c *Collection[T]) Update(ctx context.Context, doc T) error {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", c.table, err)
	}

	_, err = c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(c.table),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_exists(#name) AND #id = :id"),
		ExpressionAttributeNames: map[string]string{"#name": "name", "#id": "id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: doc.DocID()},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pets.ErrNotFound
		}
		return fmt.Errorf("%s: put item: %w", c.table, err)
	}
	return nil
}

// EnsureTable crea la tabla (PAY_PER_REQUEST, hash key name) si no existe.
func EnsureTable(ctx context.Context, client *dynamodb.Client, table string) error {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
	if err == nil {
		return nil
	}
	var rnf *types.ResourceNotFoundException
	if !errors.As(err, &rnf) {
		return fmt.Errorf("%s: describe table: %w", table, err)
	}

	_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("name"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("name"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("%s: create table: %w", table, err)
	}

	w := dynamodb.NewTableExistsWaiter(client)
	return w.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, 30*time.Second)
}
