package descriptions

import "sort"

// Tool names served over MCP
const (
	PDFText   = "pdf_text"
	PDFInfo   = "pdf_info"
	PDFImages = "pdf_images"
)

const (
	PDFTextDescription = `Extract the text of a PDF document with Xpdf pdftotext.

**When to use:** Need the text of a PDF for reading, search, or conversion, optionally limited to a page range.

**Why it's useful:** pdftotext keeps reading order, can preserve the physical layout (format "layout" or "table") and handles encrypted documents given a password.

**Examples:**
• Read a report: "Get the text of quarterly-report.pdf"
• First pages only: "Extract pages 1 to 3 of contract.pdf with layout preserved"
• Save to disk: "Write the text of manual.pdf to /tmp/manual.txt"

**Best practices:** Omit text_file to get the text inline. Use pdf_info first to learn the page count of large documents.`

	PDFInfoDescription = `Print the document information of a PDF with Xpdf pdfinfo.

**When to use:** Need the page count, page size, title, author, producer, creation dates, encryption status or the XMP metadata stream.

**Why it's useful:** Fast (it does not render pages) and a good first step before extracting text or images.

**Examples:**
• Page count: "How many pages does thesis.pdf have?"
• Metadata: "Show the XMP metadata of brochure.pdf"
• Page boxes: "Print the crop and media boxes of pages 2 to 4 of poster.pdf"

**Best practices:** Set metadata to include the XMP stream and raw_dates to see dates as stored in the file.`

	PDFImagesDescription = `Extract the images embedded in a PDF with Xpdf pdfimages.

**When to use:** Need the pictures of a PDF, e.g. scanned pages, charts or photos.

**Why it's useful:** Writes the images as stored, without re-rendering: PPM/PBM by default, JPEG files with file_format "jpeg", or raw streams with "raw".

**Examples:**
• All images: "Extract every image from catalog.pdf"
• Keep JPEGs: "Extract the photos of album.pdf as JPEG files under /tmp/album/photo"

**Best practices:** Without image_prefix the files land in a temporary directory that is removed when the server stops. Set list to get one line of information per image.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	PDFText:   PDFTextDescription,
	PDFInfo:   PDFInfoDescription,
	PDFImages: PDFImagesDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the tool names in alphabetical order
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
