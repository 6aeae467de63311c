// Package dynamostore keeps notes and profiles in DynamoDB.
//
// Notes table: partition key user_email, sort key note_id.
// Users table: partition key email.
package dynamostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Client is the subset of *dynamodb.Client the stores use.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Admin is what EnsureTables needs on top of Client.
type Admin interface {
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

const (
	attrOwner = "user_email"
	attrNote  = "note_id"
	attrEmail = "email"
)

func conditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// EnsureTables creates the notes and users tables when they are missing.
// Intended for local DynamoDB; deployed tables are provisioned elsewhere.
func EnsureTables(ctx context.Context, ddb Admin, notesTable, usersTable string) error {
	notes := &dynamodb.CreateTableInput{
		TableName:   aws.String(notesTable),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(attrOwner), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(attrNote), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(attrOwner), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(attrNote), KeyType: types.KeyTypeRange},
		},
	}
	users := &dynamodb.CreateTableInput{
		TableName:   aws.String(usersTable),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(attrEmail), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(attrEmail), KeyType: types.KeyTypeHash},
		},
	}

	for _, in := range []*dynamodb.CreateTableInput{notes, users} {
		_, err := ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: in.TableName})
		if err == nil {
			continue
		}
		var rnfe *types.ResourceNotFoundException
		if !errors.As(err, &rnfe) {
			return fmt.Errorf("DescribeTable(%s): %w", aws.ToString(in.TableName), err)
		}
		if _, err := ddb.CreateTable(ctx, in); err != nil {
			return fmt.Errorf("CreateTable(%s): %w", aws.ToString(in.TableName), err)
		}
	}
	return nil
}
