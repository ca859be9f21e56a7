package render

// Fixed class sets per element kind. The frontend styles these with Tailwind.
const (
	paragraphClass  = "mb-4 leading-5"
	ulClass         = "list-disc pl-6 space-y-2 my-4"
	olClass         = "list-decimal pl-6 space-y-2 my-4"
	listItemClass   = "mb-1"
	blockquoteClass = "border-l-4 border-gray-200 pl-4 italic my-4"
	tableWrapClass  = "overflow-x-auto my-4"
	tableClass      = "min-w-full divide-y divide-gray-300 border border-gray-200"
	theadClass      = "bg-gray-50"
	tbodyClass      = "divide-y divide-gray-200"
	thClass         = "px-3 py-2 text-left text-xs font-medium text-gray-500 uppercase tracking-wider"
	tdClass         = "px-3 py-2 whitespace-nowrap text-sm"
	hrClass         = "my-6 border-gray-200"
	linkClass       = "text-blue-600 hover:underline"
	imageClass      = "my-4 max-w-full rounded"
	inlineCodeClass = "px-1 py-0.5 bg-gray-100 rounded text-sm"

	codeBlockClass  = "code-block relative my-6 rounded-lg border border-gray-200 bg-gray-50"
	codeHeaderClass = "code-header flex items-center justify-between px-4 py-2 border-b border-gray-200"
	codeLabelClass  = "code-language text-xs font-semibold text-gray-600 uppercase tracking-wide"
	copyButtonClass = "code-copy flex items-center gap-1 text-xs text-gray-500 hover:text-gray-800"
)

var headingClasses = map[int]string{
	1: "text-2xl font-bold mt-6 mb-4",
	2: "text-xl font-bold mt-6 mb-3",
	3: "text-lg font-bold mt-6 mb-2",
	4: "text-base font-bold mt-4 mb-4",
}
