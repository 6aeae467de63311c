package dynamostore

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/parthasastry/notes-app/internal/note"
	"github.com/parthasastry/notes-app/internal/profile"
)

type profileStats struct {
	NotesCount   int     `dynamodbav:"notes_count"`
	LastNoteDate *string `dynamodbav:"last_note_date"`
}

type profileItem struct {
	Email         string       `dynamodbav:"email"`
	CognitoSub    string       `dynamodbav:"cognito_sub"`
	Name          string       `dynamodbav:"name"`
	GivenName     string       `dynamodbav:"given_name"`
	FamilyName    string       `dynamodbav:"family_name"`
	AccountStatus string       `dynamodbav:"account_status"`
	Profile       profileStats `dynamodbav:"profile"`
	LastLogin     string       `dynamodbav:"last_login"`
	CreatedAt     string       `dynamodbav:"created_at"`
	UpdatedAt     string       `dynamodbav:"updated_at"`
}

type Profiles struct {
	client Client
	table  string
}

func NewProfiles(client Client, table string) *Profiles {
	return &Profiles{client: client, table: table}
}

func (s *Profiles) Create(ctx context.Context, p profile.Profile) error {
	var last *string
	if p.LastNoteDate != nil {
		v := note.FormatTime(*p.LastNoteDate)
		last = &v
	}
	item, err := attributevalue.MarshalMap(profileItem{
		Email:         p.Email,
		CognitoSub:    p.CognitoSub,
		Name:          p.Name,
		GivenName:     p.GivenName,
		FamilyName:    p.FamilyName,
		AccountStatus: p.AccountStatus,
		Profile:       profileStats{NotesCount: p.NotesCount, LastNoteDate: last},
		LastLogin:     note.FormatTime(p.LastLogin),
		CreatedAt:     note.FormatTime(p.CreatedAt),
		UpdatedAt:     note.FormatTime(p.UpdatedAt),
	})
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(s.table),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#email)"),
		ExpressionAttributeNames: map[string]string{"#email": attrEmail},
	})
	if conditionFailed(err) {
		return profile.ErrExists
	}
	if err != nil {
		return fmt.Errorf("PutItem(%s): %w", s.table, err)
	}
	return nil
}

func (s *Profiles) Get(ctx context.Context, email string) (profile.Profile, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			attrEmail: &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return profile.Profile{}, fmt.Errorf("GetItem(%s): %w", s.table, err)
	}
	if len(out.Item) == 0 {
		return profile.Profile{}, profile.ErrNotFound
	}

	var it profileItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return profile.Profile{}, fmt.Errorf("unmarshal profile: %w", err)
	}

	p := profile.Profile{
		Email:         it.Email,
		CognitoSub:    it.CognitoSub,
		Name:          it.Name,
		GivenName:     it.GivenName,
		FamilyName:    it.FamilyName,
		AccountStatus: it.AccountStatus,
		NotesCount:    it.Profile.NotesCount,
		LastLogin:     parseOrZero(it.LastLogin),
		CreatedAt:     parseOrZero(it.CreatedAt),
		UpdatedAt:     parseOrZero(it.UpdatedAt),
	}
	if it.Profile.LastNoteDate != nil {
		t := parseOrZero(*it.Profile.LastNoteDate)
		p.LastNoteDate = &t
	}
	return p, nil
}

func parseOrZero(s string) time.Time {
	t, err := note.ParseTime(s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
