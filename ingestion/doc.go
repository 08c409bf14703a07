// Package ingestion provides the capture service and processing pipeline.
//
// The Service type accepts raw content, stores it as a pending capture
// and enqueues it for background processing. The Pipeline type drives a
// single capture through its lifecycle: cleaning, insight extraction,
// embedding, tag resolution, and the atomic commit of the resulting
// insight together with the capture's terminal status.
//
// Processing failures mark the capture failed with the cause recorded;
// there is no automatic retry. A failed or completed capture can be sent
// through a fresh cycle with Reprocess.
package ingestion
