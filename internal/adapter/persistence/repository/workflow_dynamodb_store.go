package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const (
	defaultWorkflowTableName = "repair_workflow"

	// maxTransactItems is the DynamoDB limit for one TransactWriteItems call.
	maxTransactItems = 100
)

// DynamoAPI is the subset of *dynamodb.Client the store uses.
type DynamoAPI interface {
	dynamodb.QueryAPIClient
	dynamodb.ScanAPIClient
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

type workflowItem struct {
	PK   string `dynamodbav:"pk"`
	SK   string `dynamodbav:"sk"`
	Kind string `dynamodbav:"kind"`
	Rev  int64  `dynamodbav:"rev"`
	Doc  string `dynamodbav:"doc"`
}

// WorkflowDynamoStore persists every aggregate of the workflow engine in one
// DynamoDB table.
//
// Table requirements:
//   - PK: pk (string), SK: sk (string)
//
// A transaction buffers its writes and commits them with a single
// TransactWriteItems call. Creates are conditional on the key not existing and
// updates on the stored rev matching the revision that was read.
type WorkflowDynamoStore struct {
	ddb       DynamoAPI
	tableName string
	log       *zap.Logger
}

var _ interfaces.IWorkflowStore = (*WorkflowDynamoStore)(nil)

func NewWorkflowDynamoStore(ddb DynamoAPI, tableName string, log *zap.Logger) *WorkflowDynamoStore {
	if tableName == "" {
		tableName = defaultWorkflowTableName
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WorkflowDynamoStore{ddb: ddb, tableName: tableName, log: log.Named("dynamodb")}
}

func (s *WorkflowDynamoStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx interfaces.IWorkflowTx) error) error {
	t := &dynamoTx{s: s, staged: map[string]*stagedWrite{}}
	if err := fn(ctx, t); err != nil {
		return err
	}
	return t.commit(ctx)
}

type writeOp int

const (
	opCreate writeOp = iota
	opUpdate
	opAppend
)

type stagedWrite struct {
	item   workflowItem
	op     writeOp
	expect int64
	what   string
}

type dynamoTx struct {
	s      *WorkflowDynamoStore
	staged map[string]*stagedWrite
	order  []string
}

func itemKey(pk, sk string) string { return pk + "|" + sk }

func (t *dynamoTx) commit(ctx context.Context) error {
	if len(t.order) == 0 {
		return nil
	}
	if len(t.order) > maxTransactItems {
		return fmt.Errorf("transaction has %d writes, dynamodb allows %d", len(t.order), maxTransactItems)
	}

	writes := make([]*stagedWrite, 0, len(t.order))
	items := make([]types.TransactWriteItem, 0, len(t.order))
	for _, key := range t.order {
		w := t.staged[key]
		av, err := attributevalue.MarshalMap(w.item)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", w.what, err)
		}
		put := &types.Put{TableName: aws.String(t.s.tableName), Item: av}
		switch w.op {
		case opCreate, opAppend:
			put.ConditionExpression = aws.String("attribute_not_exists(#pk)")
			put.ExpressionAttributeNames = map[string]string{"#pk": "pk"}
		case opUpdate:
			put.ConditionExpression = aws.String("#rev = :expect")
			put.ExpressionAttributeNames = map[string]string{"#rev": "rev"}
			put.ExpressionAttributeValues = map[string]types.AttributeValue{
				":expect": &types.AttributeValueMemberN{Value: fmt.Sprint(w.expect)},
			}
		}
		writes = append(writes, w)
		items = append(items, types.TransactWriteItem{Put: put})
	}

	_, err := t.s.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err == nil {
		return nil
	}
	return t.s.translateCommitError(err, writes)
}

// translateCommitError maps a cancelled transaction to the domain error of the
// first write whose condition failed.
func (s *WorkflowDynamoStore) translateCommitError(err error, writes []*stagedWrite) error {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		var tc *types.TransactionConflictException
		if errors.As(err, &tc) {
			return entities.NewDomainError(entities.ErrConcurrentModification, "transaction conflict")
		}
		return fmt.Errorf("transact write: %w", err)
	}
	for i, reason := range tce.CancellationReasons {
		code := aws.ToString(reason.Code)
		if code == "None" || code == "" || i >= len(writes) {
			continue
		}
		w := writes[i]
		s.log.Warn("transaction cancelled", zap.String("pk", w.item.PK), zap.String("sk", w.item.SK), zap.String("code", code))
		return entities.ConcurrentModification(w.what, w.item.PK+"/"+w.item.SK)
	}
	return entities.NewDomainError(entities.ErrConcurrentModification, "transaction cancelled")
}

func (t *dynamoTx) stage(w *stagedWrite) {
	key := itemKey(w.item.PK, w.item.SK)
	if _, ok := t.staged[key]; !ok {
		t.order = append(t.order, key)
	}
	t.staged[key] = w
}

func (t *dynamoTx) get(ctx context.Context, pk, sk string) (workflowItem, bool, error) {
	if w, ok := t.staged[itemKey(pk, sk)]; ok {
		return w.item, true, nil
	}
	out, err := t.s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.s.tableName),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: pk},
			"sk": &types.AttributeValueMemberS{Value: sk},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return workflowItem{}, false, fmt.Errorf("get %s/%s: %w", pk, sk, err)
	}
	if len(out.Item) == 0 {
		return workflowItem{}, false, nil
	}
	var it workflowItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return workflowItem{}, false, fmt.Errorf("unmarshal %s/%s: %w", pk, sk, err)
	}
	return it, true, nil
}

// query returns every item under pk whose sort key starts with prefix,
// overlaid with this transaction's staged writes, ordered by sort key.
func (t *dynamoTx) query(ctx context.Context, pk, prefix string) ([]workflowItem, error) {
	p := dynamodb.NewQueryPaginator(t.s.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(t.s.tableName),
		KeyConditionExpression: aws.String("#pk = :pk AND begins_with(#sk, :prefix)"),
		ExpressionAttributeNames: map[string]string{
			"#pk": "pk",
			"#sk": "sk",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: pk},
			":prefix": &types.AttributeValueMemberS{Value: prefix},
		},
		ConsistentRead: aws.Bool(true),
	})
	found := map[string]workflowItem{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", pk, err)
		}
		var items []workflowItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", pk, err)
		}
		for _, it := range items {
			found[it.SK] = it
		}
	}
	for _, w := range t.staged {
		if w.item.PK == pk && strings.HasPrefix(w.item.SK, prefix) {
			found[w.item.SK] = w.item
		}
	}
	return sortedItems(found), nil
}

func (t *dynamoTx) scanKind(ctx context.Context, kind string) ([]workflowItem, error) {
	p := dynamodb.NewScanPaginator(t.s.ddb, &dynamodb.ScanInput{
		TableName:                aws.String(t.s.tableName),
		FilterExpression:         aws.String("#kind = :kind"),
		ExpressionAttributeNames: map[string]string{"#kind": "kind"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kind": &types.AttributeValueMemberS{Value: kind},
		},
		ConsistentRead: aws.Bool(true),
	})
	found := map[string]workflowItem{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		var items []workflowItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", kind, err)
		}
		for _, it := range items {
			found[it.PK] = it
		}
	}
	for _, w := range t.staged {
		if w.item.Kind == kind {
			found[w.item.PK] = w.item
		}
	}
	return sortedItems(found), nil
}

func sortedItems(m map[string]workflowItem) []workflowItem {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]workflowItem, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func encode(pk, sk, kind string, rev int64, v any) (workflowItem, error) {
	doc, err := json.Marshal(v)
	if err != nil {
		return workflowItem{}, fmt.Errorf("encode %s: %w", kind, err)
	}
	return workflowItem{PK: pk, SK: sk, Kind: kind, Rev: rev, Doc: string(doc)}, nil
}

func decode[T any](it workflowItem) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(it.Doc), &v); err != nil {
		return v, fmt.Errorf("decode %s %s/%s: %w", it.Kind, it.PK, it.SK, err)
	}
	return v, nil
}

func decodeAll[T any](items []workflowItem) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, it := range items {
		v, err := decode[T](it)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// create stages a conditional insert. The row must not exist yet.
func (t *dynamoTx) create(ctx context.Context, pk, sk, kind, what, id string, v any, dup error) error {
	if _, ok, err := t.get(ctx, pk, sk); err != nil {
		return err
	} else if ok {
		if dup != nil {
			return dup
		}
		return entities.NewDomainError(entities.ErrAlreadyExists, "%s %q", what, id)
	}
	it, err := encode(pk, sk, kind, 1, v)
	if err != nil {
		return err
	}
	t.stage(&stagedWrite{item: it, op: opCreate, what: what})
	return nil
}

// update stages a revision-checked overwrite. readRev is the revision the
// caller read; the stored revision becomes readRev+1.
func (t *dynamoTx) update(pk, sk, kind, what, id string, readRev int64, v any) error {
	it, err := encode(pk, sk, kind, readRev+1, v)
	if err != nil {
		return err
	}
	if prev, ok := t.staged[itemKey(pk, sk)]; ok {
		if prev.item.Rev != readRev {
			return entities.ConcurrentModification(what, id)
		}
		t.stage(&stagedWrite{item: it, op: prev.op, expect: prev.expect, what: what})
		return nil
	}
	t.stage(&stagedWrite{item: it, op: opUpdate, expect: readRev, what: what})
	return nil
}

func (t *dynamoTx) appendRow(pk, sk, kind string, v any) error {
	it, err := encode(pk, sk, kind, 1, v)
	if err != nil {
		return err
	}
	t.stage(&stagedWrite{item: it, op: opAppend, what: kind})
	return nil
}

// orders

func (t *dynamoTx) GetOrder(ctx context.Context, number string) (entities.Order, error) {
	it, ok, err := t.get(ctx, orderPK(number), orderSK)
	if err != nil {
		return entities.Order{}, err
	}
	if !ok {
		return entities.Order{}, entities.NotFound("order", number)
	}
	return decode[entities.Order](it)
}

func (t *dynamoTx) CreateOrder(ctx context.Context, o *entities.Order) error {
	o.Revision = 1
	return t.create(ctx, orderPK(o.Number), orderSK, "order", "order", o.Number, o, nil)
}

func (t *dynamoTx) UpdateOrder(_ context.Context, o *entities.Order) error {
	next := *o
	next.Revision++
	if err := t.update(orderPK(o.Number), orderSK, "order", "order", o.Number, o.Revision, next); err != nil {
		return err
	}
	o.Revision = next.Revision
	return nil
}

func (t *dynamoTx) AppendStatusHistory(_ context.Context, h entities.StatusHistoryEntry) error {
	return t.appendRow(orderPK(h.OrderNumber), historyKeySK(h.Seq), "status_history", h)
}

func (t *dynamoTx) ListStatusHistory(ctx context.Context, orderNumber string) ([]entities.StatusHistoryEntry, error) {
	items, err := t.query(ctx, orderPK(orderNumber), historySK)
	if err != nil {
		return nil, err
	}
	return decodeAll[entities.StatusHistoryEntry](items)
}

// estimates

func (t *dynamoTx) GetEstimate(ctx context.Context, orderNumber string, version int) (entities.CostEstimate, error) {
	it, ok, err := t.get(ctx, orderPK(orderNumber), estimateKeySK(version))
	if err != nil {
		return entities.CostEstimate{}, err
	}
	if !ok {
		return entities.CostEstimate{}, entities.NotFound("estimate", fmt.Sprintf("%s#%d", orderNumber, version))
	}
	return decode[entities.CostEstimate](it)
}

func (t *dynamoTx) ListEstimates(ctx context.Context, orderNumber string) ([]entities.CostEstimate, error) {
	items, err := t.query(ctx, orderPK(orderNumber), estimateSK)
	if err != nil {
		return nil, err
	}
	return decodeAll[entities.CostEstimate](items)
}

func (t *dynamoTx) CreateEstimate(ctx context.Context, e *entities.CostEstimate) error {
	e.Revision = 1
	id := fmt.Sprintf("%s#%d", e.OrderNumber, e.Version)
	return t.create(ctx, orderPK(e.OrderNumber), estimateKeySK(e.Version), "estimate", "estimate", id, e,
		entities.ConcurrentModification("estimate", id))
}

func (t *dynamoTx) UpdateEstimate(_ context.Context, e *entities.CostEstimate) error {
	next := *e
	next.Revision++
	id := fmt.Sprintf("%s#%d", e.OrderNumber, e.Version)
	if err := t.update(orderPK(e.OrderNumber), estimateKeySK(e.Version), "estimate", "estimate", id, e.Revision, next); err != nil {
		return err
	}
	e.Revision = next.Revision
	return nil
}

func (t *dynamoTx) AppendEstimateHistory(_ context.Context, h entities.EstimateHistoryEntry) error {
	return t.appendRow(orderPK(h.OrderNumber), estHistoryPrefix(h.EstimateVersion)+timeKey(h.At)+"#"+h.ID, "estimate_history", h)
}

func (t *dynamoTx) ListEstimateHistory(ctx context.Context, orderNumber string, version int) ([]entities.EstimateHistoryEntry, error) {
	items, err := t.query(ctx, orderPK(orderNumber), estHistoryPrefix(version))
	if err != nil {
		return nil, err
	}
	return decodeAll[entities.EstimateHistoryEntry](items)
}

// parts and ledger

func (t *dynamoTx) GetPart(ctx context.Context, id string) (entities.Part, error) {
	it, ok, err := t.get(ctx, partPK(id), partSK)
	if err != nil {
		return entities.Part{}, err
	}
	if !ok {
		return entities.Part{}, entities.NotFound("part", id)
	}
	return decode[entities.Part](it)
}

func (t *dynamoTx) ListParts(ctx context.Context) ([]entities.Part, error) {
	items, err := t.scanKind(ctx, "part")
	if err != nil {
		return nil, err
	}
	return decodeAll[entities.Part](items)
}

func (t *dynamoTx) CreatePart(ctx context.Context, p *entities.Part) error {
	p.Revision = 1
	return t.create(ctx, partPK(p.ID), partSK, "part", "part", p.ID, p, nil)
}

func (t *dynamoTx) UpdatePart(_ context.Context, p *entities.Part) error {
	next := *p
	next.Revision++
	if err := t.update(partPK(p.ID), partSK, "part", "part", p.ID, p.Revision, next); err != nil {
		return err
	}
	p.Revision = next.Revision
	return nil
}

func (t *dynamoTx) AppendMovement(_ context.Context, m entities.StockMovement) error {
	return t.appendRow(partPK(m.PartID), movementKeySK(m.Seq), "movement", m)
}

func (t *dynamoTx) ListMovements(ctx context.Context, partID string) ([]entities.StockMovement, error) {
	items, err := t.query(ctx, partPK(partID), movementSK)
	if err != nil {
		return nil, err
	}
	return decodeAll[entities.StockMovement](items)
}

// reservations

func (t *dynamoTx) GetReservation(ctx context.Context, orderNumber, id string) (entities.PartUsageReservation, error) {
	it, ok, err := t.get(ctx, orderPK(orderNumber), reservationKeySK(id))
	if err != nil {
		return entities.PartUsageReservation{}, err
	}
	if !ok {
		return entities.PartUsageReservation{}, entities.NotFound("reservation", id)
	}
	return decode[entities.PartUsageReservation](it)
}

func (t *dynamoTx) ListReservations(ctx context.Context, orderNumber string) ([]entities.PartUsageReservation, error) {
	items, err := t.query(ctx, orderPK(orderNumber), reservationSK)
	if err != nil {
		return nil, err
	}
	out, err := decodeAll[entities.PartUsageReservation](items)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (t *dynamoTx) CreateReservation(ctx context.Context, r *entities.PartUsageReservation) error {
	r.Revision = 1
	return t.create(ctx, orderPK(r.OrderNumber), reservationKeySK(r.ID), "reservation", "reservation", r.ID, r, nil)
}

func (t *dynamoTx) UpdateReservation(_ context.Context, r *entities.PartUsageReservation) error {
	next := *r
	next.Revision++
	if err := t.update(orderPK(r.OrderNumber), reservationKeySK(r.ID), "reservation", "reservation", r.ID, r.Revision, next); err != nil {
		return err
	}
	r.Revision = next.Revision
	return nil
}

// inventory sessions

func (t *dynamoTx) GetSession(ctx context.Context, id string) (entities.InventorySession, error) {
	it, ok, err := t.get(ctx, sessionPK(id), sessionSK)
	if err != nil {
		return entities.InventorySession{}, err
	}
	if !ok {
		return entities.InventorySession{}, entities.NotFound("inventory session", id)
	}
	return decode[entities.InventorySession](it)
}

func (t *dynamoTx) CreateSession(ctx context.Context, s *entities.InventorySession) error {
	s.Revision = 1
	return t.create(ctx, sessionPK(s.ID), sessionSK, "session", "inventory session", s.ID, s, nil)
}

func (t *dynamoTx) UpdateSession(_ context.Context, s *entities.InventorySession) error {
	next := *s
	next.Revision++
	if err := t.update(sessionPK(s.ID), sessionSK, "session", "inventory session", s.ID, s.Revision, next); err != nil {
		return err
	}
	s.Revision = next.Revision
	return nil
}

// fee payments

func (t *dynamoTx) CreateFeePayment(_ context.Context, p entities.FeePayment) error {
	return t.appendRow(orderPK(p.OrderNumber), feePaymentPrefix(p.EstimateVersion)+p.ID, "fee_payment", p)
}

func (t *dynamoTx) ListFeePayments(ctx context.Context, orderNumber string, version int) ([]entities.FeePayment, error) {
	items, err := t.query(ctx, orderPK(orderNumber), feePaymentPrefix(version))
	if err != nil {
		return nil, err
	}
	return decodeAll[entities.FeePayment](items)
}
