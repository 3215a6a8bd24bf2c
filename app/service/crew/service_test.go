package crew

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResearch struct {
	doc string
	err error
}

func (f *fakeResearch) Research(_ context.Context, topic string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.doc + " about " + topic, nil
}

type fakeWrite struct {
	sawResearch string
	err         error
}

func (f *fakeWrite) Write(_ context.Context, research string) (string, error) {
	f.sawResearch = research
	if f.err != nil {
		return "", f.err
	}
	return "# draft from: " + research, nil
}

type fakeEdit struct {
	sawDraft string
	blog     *Blog
	err      error
}

func (f *fakeEdit) Edit(_ context.Context, draft string) (*Blog, error) {
	f.sawDraft = draft
	if f.err != nil {
		return nil, f.err
	}
	return f.blog, nil
}

func validBlog() *Blog {
	return &Blog{
		Header: "Header",
		Entry:  "Entry",
		Paragraphs: []Paragraph{
			{SubHeader: "Sub", Paragraph: "Body"},
		},
		Conclusion:  "Conclusion",
		SEOKeywords: []string{"seo"},
	}
}

func TestKickoff_StagesRunInOrderOnEachOthersOutput(t *testing.T) {
	research := &fakeResearch{doc: "outline"}
	write := &fakeWrite{}
	edit := &fakeEdit{blog: validBlog()}

	svc := NewWithStages(research, write, edit)

	blog, err := svc.Kickoff(context.Background(), "ducks")
	require.NoError(t, err)

	assert.Equal(t, "outline about ducks", write.sawResearch,
		"write stage consumes the research output")
	assert.Equal(t, "# draft from: outline about ducks", edit.sawDraft,
		"edit stage consumes the write output")
	assert.Equal(t, "Header", blog.Header)
}

func TestKickoff_ResearchFailureAbortsBeforeWrite(t *testing.T) {
	write := &fakeWrite{}
	svc := NewWithStages(&fakeResearch{err: errors.New("search down")}, write, &fakeEdit{blog: validBlog()})

	_, err := svc.Kickoff(context.Background(), "ducks")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "research stage failed")
	assert.Empty(t, write.sawResearch, "write stage must not run after a research failure")
}

func TestKickoff_WriteFailureAbortsBeforeEdit(t *testing.T) {
	edit := &fakeEdit{blog: validBlog()}
	svc := NewWithStages(&fakeResearch{doc: "outline"}, &fakeWrite{err: errors.New("model error")}, edit)

	_, err := svc.Kickoff(context.Background(), "ducks")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "write stage failed")
	assert.Empty(t, edit.sawDraft)
}

func TestKickoff_EditFailureReturnsNoBlog(t *testing.T) {
	svc := NewWithStages(&fakeResearch{doc: "outline"}, &fakeWrite{}, &fakeEdit{err: errors.New("bad json")})

	blog, err := svc.Kickoff(context.Background(), "ducks")
	require.Error(t, err)

	assert.Nil(t, blog)
	assert.Contains(t, err.Error(), "edit stage failed")
}
