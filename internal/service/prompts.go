package service

// extractionPrompt instructs the model to return exactly one JSON object for
// an inline document. The categorical enums and worked examples are part of
// the external contract: anything without a parseable JSON object is a hard
// extraction failure.
const extractionPrompt = `You are a document data extraction expert. Analyze this document and extract ALL information.

Return ONLY valid JSON with no additional text or markdown.

The JSON must have these fields:
- "merchant": string (the business, company, employer, organization, or issuer name. For W-2s use the employer name. For tax forms use the issuing agency. NEVER leave this empty.)
- "amount": number (primary monetary value. For receipts/bills use the total. For pay stubs use net pay. For W-2s/1099s/informational docs use 0. For non-financial docs use 0.)
- "category": string - MUST be exactly one of: "Finance", "Health", "Personal", "Home", "Identity/Legal", "Career/School"
  - Finance: Pay stubs, tax papers (1040, 1099, W-2), receipts, bills, bank statements
  - Health: Lab results, appointments, prescriptions, insurance docs, medical records
  - Personal: Notes, journal entries, personal letters, photos
  - Home: Rent/mortgage contracts, car insurance, maintenance records, home repairs
  - Identity/Legal: IDs, licenses, birth certificates, passports, legal contracts
  - Career/School: Certifications, resume, work notes, diplomas, transcripts
- "transaction_type": string - MUST be exactly one of: "expense", "income", "record"
  - "expense": Bills, receipts (supermarket, Netflix, utilities, rent, any purchase or payment OUT)
  - "income": Pay stubs, deposits, refunds (money coming IN)
  - "record": Informational documents (W-2, 1099, contracts, IDs, medical results, certificates). Use amount 0 for records to avoid double-counting.
- "date": string (date in YYYY-MM-DD format. For W-2s use tax year end. Use today if unclear.)
- "due_date": string or null (due date for bills in YYYY-MM-DD, null otherwise)
- "summary": string (brief 1-2 sentence summary)
- "raw_text": string (COMPLETE transcription of ALL visible text. Include names, addresses, phone numbers, account numbers, dates, amounts, line items, etc.)

IMPORTANT: W-2s and 1099s are RECORDS, not income. Their amounts should be 0 to avoid double-counting with actual pay stubs.

Example for a W-2:
{"merchant":"Acme Corp","amount":0,"category":"Finance","transaction_type":"record","date":"2024-12-31","due_date":null,"summary":"W-2 from Acme Corp for tax year 2024, total wages $65,000.","raw_text":"Form W-2..."}

Example for a grocery receipt:
{"merchant":"Walmart","amount":47.53,"category":"Finance","transaction_type":"expense","date":"2025-01-15","due_date":null,"summary":"Groceries at Walmart including produce and dairy.","raw_text":"WALMART SUPERCENTER..."}

Example for a pay stub:
{"merchant":"Acme Corp","amount":2500.00,"category":"Finance","transaction_type":"income","date":"2025-01-31","due_date":null,"summary":"Bi-weekly pay stub from Acme Corp, net pay $2,500.","raw_text":"PAY STUB..."}`

// chatInstructions is appended to the RAG context before the user message.
const chatInstructions = `
=== INSTRUCTIONS ===
The user may:
1. Upload a document - you will receive the file inline. Process it and report what you extracted.
2. Ask questions about their stored documents - answer precisely using the document data above. Include specific details like addresses, names, amounts, dates, etc.
3. Request analytics - compute totals, comparisons, trends from the stored data. Remember: only expenses subtract, only income adds. Records (W-2s, 1099s, etc.) are informational only.
4. Create a note or reminder - if the user wants to save a note or set a reminder, respond with JSON:
   {"action":"create_note","content":"...note text...","reminder_date":"YYYY-MM-DD or null","reminder_time":"HH:MM or null"}
   Return ONLY the JSON when creating notes. Do not wrap it in markdown.

5. Request to download or view the original document - if the user asks to download, view, or get the original file for a document, include the download link in your response using this exact markdown format: [Download Original Document](FILE_URL) where FILE_URL is the Download URL from the document data above. Always include the download link when the user asks for the original file, receipt, document, or PDF.

For questions, answer naturally and precisely. If information exists in the document data, provide the exact details.
If information is not in any stored document, say so clearly.

User: `
