package store

import (
	"context"
	"time"

	"smartdoc"
	"smartdoc/smartdoctest"
)

var (
	testNow = time.Now().UTC().Truncate(time.Millisecond)
	gen     = smartdoctest.New(testNow.UnixNano(), testNow)
)

func (s *StoreTestSuite) TestFindDocument() {
	ctx, cancel := testContext()
	defer cancel()

	aDocument := gen.Document(
		smartdoctest.WithEmbedder("google-genai"),
		smartdoctest.WithRetriever("redis"),
	)

	err := s.inTx(ctx, func(ctx context.Context) error {
		_, err := s.adapter.FindDocument(ctx, aDocument.ID)
		return err
	})
	s.Require().ErrorIs(err, smartdoc.ErrNotFound)

	err = s.inTx(ctx, func(ctx context.Context) error {
		return s.adapter.SaveDocuments(ctx, aDocument)
	})
	s.Require().NoError(err)

	var savedDocument *smartdoc.Document
	err = s.inTx(ctx, func(ctx context.Context) error {
		var err error
		savedDocument, err = s.adapter.FindDocument(ctx, aDocument.ID)
		return err
	})
	s.Require().NoError(err)
	s.Equal(aDocument, savedDocument)
}

func (s *StoreTestSuite) TestSaveDocuments_Upsert() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		document1 = gen.Document(
			smartdoctest.WithStatus(smartdoc.DocumentStatusUploaded),
		)
		document2 = gen.Document(
			smartdoctest.WithStatus(smartdoc.DocumentStatusProcessing),
		)
	)

	err := s.inTx(ctx, func(ctx context.Context) error {
		return s.adapter.SaveDocuments(ctx, document1, document2)
	})
	s.Require().NoError(err)

	var savedDocument1, savedDocument2 *smartdoc.Document
	err = s.inTx(ctx, func(ctx context.Context) error {
		var err error
		if savedDocument1, err = s.adapter.FindDocument(ctx, document1.ID); err != nil {
			return err
		}
		savedDocument2, err = s.adapter.FindDocument(ctx, document2.ID)
		return err
	})
	s.Require().NoError(err)
	s.Equal(document1, savedDocument1)
	s.Equal(smartdoc.DocumentStatusUploaded, savedDocument1.Status)
	s.Equal(document2, savedDocument2)
	s.Equal(smartdoc.DocumentStatusProcessing, savedDocument2.Status)

	// Save again to cause an upsert
	document1.Status = smartdoc.DocumentStatusProcessing
	document1.Updated = document1.Updated.Add(1 * time.Minute)

	document2.Status = smartdoc.DocumentStatusProcessingFailed
	document2.StatusMessage = "some error message"
	document2.Updated = document2.Updated.Add(2 * time.Minute)

	err = s.inTx(ctx, func(ctx context.Context) error {
		return s.adapter.SaveDocuments(ctx, document1, document2)
	})
	s.Require().NoError(err)

	err = s.inTx(ctx, func(ctx context.Context) error {
		var err error
		if savedDocument1, err = s.adapter.FindDocument(ctx, document1.ID); err != nil {
			return err
		}
		savedDocument2, err = s.adapter.FindDocument(ctx, document2.ID)
		return err
	})
	s.Require().NoError(err)
	s.Equal(document1, savedDocument1)
	s.Equal(smartdoc.DocumentStatusProcessing, savedDocument1.Status)
	s.Equal(document2, savedDocument2)
	s.Equal(smartdoc.DocumentStatusProcessingFailed, savedDocument2.Status)
	s.Equal("some error message", savedDocument2.StatusMessage)
}

func (s *StoreTestSuite) TestListDocuments() {
	ctx, cancel := testContext()
	defer cancel()

	var documents []*smartdoc.Document
	err := s.inTx(ctx, func(ctx context.Context) error {
		var err error
		documents, err = s.adapter.ListDocuments(ctx, smartdoc.DocumentFilter{}, smartdoc.SortParams{})
		return err
	})
	s.Require().NoError(err)
	s.Empty(documents)

	var (
		document1 = gen.Document(
			smartdoctest.WithEmbedder("google-genai"),
			smartdoctest.WithRetriever("weaviate"),
			smartdoctest.WithCreated(testNow.Add(-2*time.Minute)),
		)
		document2 = gen.Document(
			smartdoctest.WithEmbedder("google-genai"),
			smartdoctest.WithRetriever("redis"),
			smartdoctest.WithCreated(testNow.Add(-1*time.Minute)),
		)
	)

	err = s.inTx(ctx, func(ctx context.Context) error {
		return s.adapter.SaveDocuments(ctx, document1, document2)
	})
	s.Require().NoError(err)

	err = s.inTx(ctx, func(ctx context.Context) error {
		var err error
		documents, err = s.adapter.ListDocuments(ctx, smartdoc.DocumentFilter{}, smartdoc.SortParams{})
		return err
	})
	s.Require().NoError(err)
	s.Require().Len(documents, 2)
	s.Contains(documents, document1)
	s.Contains(documents, document2)

	// Try applying a filter
	err = s.inTx(ctx, func(ctx context.Context) error {
		var err error
		documents, err = s.adapter.ListDocuments(ctx, smartdoc.DocumentFilter{
			Embedder:  "google-genai",
			Retriever: "weaviate",
		}, smartdoc.SortParams{})
		return err
	})
	s.Require().NoError(err)
	s.Require().Len(documents, 1)
	s.Equal(document1, documents[0])

	// Sort ascending by creation time with a limit
	err = s.inTx(ctx, func(ctx context.Context) error {
		var err error
		documents, err = s.adapter.ListDocuments(ctx, smartdoc.DocumentFilter{}, smartdoc.SortParams{
			Limit: 1,
			Order: smartdoc.SortOrderAsc,
			By:    `d."created"`,
		})
		return err
	})
	s.Require().NoError(err)
	s.Require().Len(documents, 1)
	s.Equal(document1, documents[0])
}

func (s *StoreTestSuite) TestListDocuments_LastUpdatedBefore() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		staleDocument = gen.Document(
			smartdoctest.WithStatus(smartdoc.DocumentStatusProcessing),
			smartdoctest.WithUpdated(testNow.Add(-1*time.Hour)),
		)
		freshDocument = gen.Document(
			smartdoctest.WithStatus(smartdoc.DocumentStatusProcessing),
			smartdoctest.WithUpdated(testNow),
		)
	)

	err := s.inTx(ctx, func(ctx context.Context) error {
		return s.adapter.SaveDocuments(ctx, staleDocument, freshDocument)
	})
	s.Require().NoError(err)

	var documents []*smartdoc.Document
	err = s.inTx(ctx, func(ctx context.Context) error {
		var err error
		documents, err = s.adapter.ListDocuments(ctx, smartdoc.DocumentFilter{
			Status:            smartdoc.DocumentStatusProcessing,
			LastUpdatedBefore: testNow.Add(-30 * time.Minute),
		}, smartdoc.SortParams{})
		return err
	})
	s.Require().NoError(err)
	s.Require().Len(documents, 1)
	s.Equal(staleDocument.ID, documents[0].ID)
}

func (s *StoreTestSuite) TestDeleteDocuments() {
	ctx, cancel := testContext()
	defer cancel()

	aDocument := gen.Document()

	err := s.inTx(ctx, func(ctx context.Context) error {
		return s.adapter.SaveDocuments(ctx, aDocument)
	})
	s.Require().NoError(err)

	err = s.inTx(ctx, func(ctx context.Context) error {
		return s.adapter.DeleteDocuments(ctx, aDocument)
	})
	s.Require().NoError(err)

	err = s.inTx(ctx, func(ctx context.Context) error {
		_, err := s.adapter.FindDocument(ctx, aDocument.ID)
		return err
	})
	s.Require().ErrorIs(err, smartdoc.ErrNotFound)
}
