package dicomio

import (
	"fmt"

	dcmlib "github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/dicomops/dcmon-cli/internal/core/dicom"
)

// TagReader reads routing-relevant tags from DICOM files on disk.
type TagReader struct{}

// NewTagReader creates a tag reader
func NewTagReader() *TagReader {
	return &TagReader{}
}

// StudyDescription parses the file and returns its StudyDescription tag.
// A file that parses but carries no StudyDescription yields an empty
// description, mirroring how the monitor has always treated untagged files:
// they route nowhere but are not errors. Pixel data is skipped; routing
// only needs the header.
func (r *TagReader) StudyDescription(path string) (dicom.StudyDescription, error) {
	dataset, err := dcmlib.ParseFile(path, nil, dcmlib.SkipPixelData())
	if err != nil {
		return dicom.StudyDescription{}, fmt.Errorf("failed to parse DICOM file %s: %w", path, err)
	}

	element, err := dataset.FindElementByTag(tag.StudyDescription)
	if err != nil {
		return dicom.NewStudyDescription(""), nil
	}

	values, ok := element.Value.GetValue().([]string)
	if !ok || len(values) == 0 {
		return dicom.NewStudyDescription(""), nil
	}

	return dicom.NewStudyDescription(values[0]), nil
}
