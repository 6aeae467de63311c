package dynamostore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/parthasastry/notes-app/internal/note"
)

type noteItem struct {
	UserEmail string   `dynamodbav:"user_email"`
	NoteID    string   `dynamodbav:"note_id"`
	Title     string   `dynamodbav:"title"`
	Content   string   `dynamodbav:"content"`
	Tags      []string `dynamodbav:"tags"`
	CreatedAt string   `dynamodbav:"created_at"`
	UpdatedAt string   `dynamodbav:"updated_at"`
}

type Notes struct {
	client Client
	table  string
}

func NewNotes(client Client, table string) *Notes {
	return &Notes{client: client, table: table}
}

func (s *Notes) key(ownerID, noteID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrOwner: &types.AttributeValueMemberS{Value: ownerID},
		attrNote:  &types.AttributeValueMemberS{Value: noteID},
	}
}

func (s *Notes) Put(ctx context.Context, n note.Note) error {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	item, err := attributevalue.MarshalMap(noteItem{
		UserEmail: n.OwnerID,
		NoteID:    n.NoteID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tags,
		CreatedAt: note.FormatTime(n.CreatedAt),
		UpdatedAt: note.FormatTime(n.UpdatedAt),
	})
	if err != nil {
		return fmt.Errorf("marshal note: %w", err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("PutItem(%s): %w", s.table, err)
	}
	return nil
}

func (s *Notes) Get(ctx context.Context, ownerID, noteID string) (note.Note, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(ownerID, noteID),
	})
	if err != nil {
		return note.Note{}, fmt.Errorf("GetItem(%s): %w", s.table, err)
	}
	if len(out.Item) == 0 {
		return note.Note{}, note.ErrNotFound
	}
	return decodeNote(out.Item)
}

func (s *Notes) List(ctx context.Context, ownerID string) ([]note.Note, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("#owner = :owner"),
		ExpressionAttributeNames: map[string]string{
			"#owner": attrOwner,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: ownerID},
		},
		ScanIndexForward: aws.Bool(false),
	}

	out := []note.Note{}
	for {
		page, err := s.client.Query(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("Query(%s): %w", s.table, err)
		}
		for _, item := range page.Items {
			n, err := decodeNote(item)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		if len(page.LastEvaluatedKey) == 0 {
			return out, nil
		}
		in.ExclusiveStartKey = page.LastEvaluatedKey
	}
}

func (s *Notes) Update(ctx context.Context, ownerID, noteID string, p note.Patch, updatedAt time.Time) (note.Note, error) {
	var sets []string
	names := map[string]string{"#note": attrNote}
	values := map[string]types.AttributeValue{}

	add := func(attr string, v any) error {
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", attr, err)
		}
		sets = append(sets, fmt.Sprintf("#%s = :%s", attr, attr))
		names["#"+attr] = attr
		values[":"+attr] = av
		return nil
	}

	if p.Title.Set {
		if err := add("title", p.Title.Value); err != nil {
			return note.Note{}, err
		}
	}
	if p.Content.Set {
		if err := add("content", p.Content.Value); err != nil {
			return note.Note{}, err
		}
	}
	if p.Tags.Set {
		tags := p.Tags.Value
		if tags == nil {
			tags = []string{}
		}
		if err := add("tags", tags); err != nil {
			return note.Note{}, err
		}
	}
	if err := add("updated_at", note.FormatTime(updatedAt)); err != nil {
		return note.Note{}, err
	}

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       s.key(ownerID, noteID),
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ConditionExpression:       aws.String("attribute_exists(#note)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if conditionFailed(err) {
		return note.Note{}, note.ErrNotFound
	}
	if err != nil {
		return note.Note{}, fmt.Errorf("UpdateItem(%s): %w", s.table, err)
	}
	return decodeNote(out.Attributes)
}

func (s *Notes) Delete(ctx context.Context, ownerID, noteID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(s.table),
		Key:                      s.key(ownerID, noteID),
		ConditionExpression:      aws.String("attribute_exists(#note)"),
		ExpressionAttributeNames: map[string]string{"#note": attrNote},
	})
	if conditionFailed(err) {
		return note.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("DeleteItem(%s): %w", s.table, err)
	}
	return nil
}

func decodeNote(item map[string]types.AttributeValue) (note.Note, error) {
	var it noteItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return note.Note{}, fmt.Errorf("unmarshal note: %w", err)
	}
	created, err := note.ParseTime(it.CreatedAt)
	if err != nil {
		return note.Note{}, fmt.Errorf("note %s created_at: %w", it.NoteID, err)
	}
	updated, err := note.ParseTime(it.UpdatedAt)
	if err != nil {
		return note.Note{}, fmt.Errorf("note %s updated_at: %w", it.NoteID, err)
	}
	tags := it.Tags
	if tags == nil {
		tags = []string{}
	}
	return note.Note{
		OwnerID:   it.UserEmail,
		NoteID:    it.NoteID,
		Title:     it.Title,
		Content:   it.Content,
		Tags:      tags,
		CreatedAt: created.UTC(),
		UpdatedAt: updated.UTC(),
	}, nil
}
