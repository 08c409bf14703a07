// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	mapvB8IeNoiGcH6S1x7oFvjΔwΞΞ   = ord.NewMapSer[string, string](ord.String, ord.String)
	sliceLTAfXHwEBME6PDqra9ΣkUwΞΞ = ord.NewSliceSer[float32](varint.Float32)
	sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ = ord.NewSliceSer[string](ord.String)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var CaptureStatusMUS = captureStatusMUS{}

type captureStatusMUS struct{}

func (s captureStatusMUS) Marshal(v CaptureStatus, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s captureStatusMUS) Unmarshal(bs []byte) (v CaptureStatus, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = CaptureStatus(tmp)
	return
}

func (s captureStatusMUS) Size(v CaptureStatus) (size int) {
	return varint.Int.Size(int(v))
}

func (s captureStatusMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var ContentTypeMUS = contentTypeMUS{}

type contentTypeMUS struct{}

func (s contentTypeMUS) Marshal(v ContentType, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s contentTypeMUS) Unmarshal(bs []byte) (v ContentType, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ContentType(tmp)
	return
}

func (s contentTypeMUS) Size(v ContentType) (size int) {
	return varint.Int.Size(int(v))
}

func (s contentTypeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var CaptureMUS = captureMUS{}

type captureMUS struct{}

func (s captureMUS) Marshal(v Capture, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.SourceURL, bs[n:])
	n += ContentTypeMUS.Marshal(v.ContentType, bs[n:])
	n += ord.String.Marshal(v.RawContent, bs[n:])
	n += mapvB8IeNoiGcH6S1x7oFvjΔwΞΞ.Marshal(v.Metadata, bs[n:])
	n += sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Marshal(v.RequestedTags, bs[n:])
	n += CaptureStatusMUS.Marshal(v.Status, bs[n:])
	n += ord.String.Marshal(v.ErrorMessage, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.CapturedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.ProcessedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s captureMUS) Unmarshal(bs []byte) (v Capture, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.SourceURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ContentType, n1, err = ContentTypeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.RawContent, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = mapvB8IeNoiGcH6S1x7oFvjΔwΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.RequestedTags, n1, err = sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status, n1, err = CaptureStatusMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ErrorMessage, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CapturedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ProcessedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s captureMUS) Size(v Capture) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.SourceURL)
	size += ContentTypeMUS.Size(v.ContentType)
	size += ord.String.Size(v.RawContent)
	size += mapvB8IeNoiGcH6S1x7oFvjΔwΞΞ.Size(v.Metadata)
	size += sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Size(v.RequestedTags)
	size += CaptureStatusMUS.Size(v.Status)
	size += ord.String.Size(v.ErrorMessage)
	size += raw.TimeUnixMicro.Size(v.CapturedAt)
	size += raw.TimeUnixMicro.Size(v.ProcessedAt)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s captureMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ContentTypeMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = mapvB8IeNoiGcH6S1x7oFvjΔwΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = CaptureStatusMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var InsightMUS = insightMUS{}

type insightMUS struct{}

func (s insightMUS) Marshal(v Insight, bs []byte) (n int) {
	n = IDMUS.Marshal(v.CaptureId, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	n += sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Marshal(v.KeyPoints, bs[n:])
	n += sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Marshal(v.ActionItems, bs[n:])
	n += ord.String.Marshal(v.SourceTitle, bs[n:])
	n += ord.String.Marshal(v.Author, bs[n:])
	n += sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Marshal(v.Tags, bs[n:])
	n += sliceLTAfXHwEBME6PDqra9ΣkUwΞΞ.Marshal(v.Vector, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.ProcessedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s insightMUS) Unmarshal(bs []byte) (v Insight, n int, err error) {
	v.CaptureId, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.KeyPoints, n1, err = sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ActionItems, n1, err = sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceTitle, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Author, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Tags, n1, err = sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = sliceLTAfXHwEBME6PDqra9ΣkUwΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ProcessedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s insightMUS) Size(v Insight) (size int) {
	size = IDMUS.Size(v.CaptureId)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Summary)
	size += sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Size(v.KeyPoints)
	size += sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Size(v.ActionItems)
	size += ord.String.Size(v.SourceTitle)
	size += ord.String.Size(v.Author)
	size += sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Size(v.Tags)
	size += sliceLTAfXHwEBME6PDqra9ΣkUwΞΞ.Size(v.Vector)
	size += raw.TimeUnixMicro.Size(v.ProcessedAt)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s insightMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceLgpJpdEN96oDdΔ6yTQkmVQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceLTAfXHwEBME6PDqra9ΣkUwΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var TagMUS = tagMUS{}

type tagMUS struct{}

func (s tagMUS) Marshal(v Tag, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s tagMUS) Unmarshal(bs []byte) (v Tag, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s tagMUS) Size(v Tag) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Name)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s tagMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var CheckpointMUS = checkpointMUS{}

type checkpointMUS struct{}

func (s checkpointMUS) Marshal(v Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(v.ProcessorType, bs)
	n += IDMUS.Marshal(v.LastId, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s checkpointMUS) Unmarshal(bs []byte) (v Checkpoint, n int, err error) {
	v.ProcessorType, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.LastId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s checkpointMUS) Size(v Checkpoint) (size int) {
	size = ord.String.Size(v.ProcessorType)
	size += IDMUS.Size(v.LastId)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s checkpointMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}
