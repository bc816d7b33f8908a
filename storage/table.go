package storage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
)

const tablePartition = "board"

// TableSlot stores the board document as a single entity in an Azure Table.
type TableSlot struct {
	table *aztables.Client
	key   string
}

// NewTableSlot creates a slot backed by the named table, reachable through
// the given connection string.
func NewTableSlot(connStr, tableName, key string) (*TableSlot, error) {
	opts := aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    3,
				TryTimeout:    time.Minute * 3,
				RetryDelay:    time.Second * 1,
				MaxRetryDelay: time.Second * 15,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	svc, err := aztables.NewServiceClientFromConnectionString(connStr, &opts)
	if err != nil {
		return nil, err
	}
	if key == "" {
		key = DefaultKey
	}
	return &TableSlot{table: svc.NewClient(tableName), key: key}, nil
}

type boardEntity struct {
	aztables.Entity
	Doc string `json:"Doc"`
}

func (s *TableSlot) Load(ctx context.Context) ([]byte, error) {
	resp, err := s.table.GetEntity(ctx, tablePartition, s.key, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var ent boardEntity
	if err := json.Unmarshal(resp.Value, &ent); err != nil {
		return nil, err
	}
	return []byte(ent.Doc), nil
}

func (s *TableSlot) Save(ctx context.Context, data []byte) error {
	ent := boardEntity{
		Entity: aztables.Entity{PartitionKey: tablePartition, RowKey: s.key},
		Doc:    string(data),
	}
	payload, err := json.Marshal(ent)
	if err != nil {
		return err
	}
	_, err = s.table.UpsertEntity(ctx, payload, &aztables.UpsertEntityOptions{
		UpdateMode: aztables.UpdateModeReplace,
	})
	return err
}

func (s *TableSlot) Clear(ctx context.Context) error {
	_, err := s.table.DeleteEntity(ctx, tablePartition, s.key, nil)
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}
